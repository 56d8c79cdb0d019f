package filesystem

import (
	"bufio"
	"fmt"
	"os"

	"github.com/bichngocdo/pp-attachment-candidate-extraction/extract"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/render"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/stat"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/storage"
)

// RecordFile writes records to a file in the text or JSON lines format.
type RecordFile struct {
	f   *os.File
	buf *bufio.Writer
	w   extract.RecordWriter

	numRecords int
}

var _ storage.RecordStore = (*RecordFile)(nil)

// Create truncates or creates the file at path.
func Create(path, format string) (*RecordFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}

	buf := bufio.NewWriter(f)
	rf := &RecordFile{f: f, buf: buf}
	switch format {
	case render.FormatText:
		rf.w = render.NewTextRenderer(buf)
	case render.FormatJSON:
		rf.w = render.NewJSONRenderer(buf)
	default:
		f.Close()
		return nil, fmt.Errorf("unsupported file format: %s", format)
	}
	return rf, nil
}

func (rf *RecordFile) Write(rec extract.Record) error {
	if err := rf.w.Write(rec); err != nil {
		return err
	}
	rf.numRecords++
	return nil
}

// NumRecords returns the number of records written so far.
func (rf *RecordFile) NumRecords() int {
	return rf.numRecords
}

// Finish flushes and closes the file. The counters are reported by the
// caller, the file only holds records.
func (rf *RecordFile) Finish(stats stat.Stats) error {
	if err := rf.buf.Flush(); err != nil {
		rf.f.Close()
		return err
	}
	return rf.f.Close()
}
