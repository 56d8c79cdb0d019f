package file

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const (
	FieldSeparator = "\t"

	maxLineSize = 1024 * 1024
)

// Reader groups the lines of a CoNLL-like stream into sentence blocks. A
// block is the list of tab-split non-blank lines between blank lines.
type Reader struct {
	scanner *bufio.Scanner
	done    bool
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{scanner: s}
}

// Next returns the next sentence block. It returns io.EOF once the input is
// exhausted. The final block is returned even without a trailing blank
// line. Column counts are not validated.
func (r *Reader) Next() ([][]string, error) {
	if r.done {
		return nil, io.EOF
	}

	var block [][]string
	for r.scanner.Scan() {
		line := strings.TrimRight(r.scanner.Text(), " \t\r\n")
		if line == "" {
			if len(block) > 0 {
				return block, nil
			}
			continue
		}
		block = append(block, strings.Split(line, FieldSeparator))
	}

	r.done = true
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	if len(block) == 0 {
		return nil, io.EOF
	}
	return block, nil
}

// ReadAll returns all remaining blocks.
func (r *Reader) ReadAll() ([][][]string, error) {
	var blocks [][][]string
	for {
		b, err := r.Next()
		if err == io.EOF {
			return blocks, nil
		}
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
}

// ReadFile reads all sentence blocks from the file at path.
func ReadFile(path string) ([][][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return NewReader(f).ReadAll()
}
