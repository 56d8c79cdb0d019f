package sentence

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrFormat is returned for lines that cannot be turned into a Token.
var ErrFormat = errors.New("malformed token line")

// Columns maps token attributes to 0-based column indexes. The field tag is
// always the last column.
type Columns struct {
	Id        int
	Word      int
	GoldPos   int
	PredPos   int
	GoldHead  int
	GoldLabel int
	PredHead  int
	PredLabel int
}

// DefaultColumns is the layout with predicted heads and labels in columns
// 8 and 9.
func DefaultColumns() Columns {
	return Columns{
		Id:        0,
		Word:      1,
		GoldPos:   3,
		PredPos:   4,
		GoldHead:  6,
		GoldLabel: 7,
		PredHead:  8,
		PredLabel: 9,
	}
}

// GoldOnlyColumns is the layout for data without predicted trees: the
// predicted head and label read the gold columns.
func GoldOnlyColumns() Columns {
	c := DefaultColumns()
	c.PredHead = c.GoldHead
	c.PredLabel = c.GoldLabel
	return c
}

// ColumnsFor returns the column layout for the gold-only setting.
func ColumnsFor(onlyGold bool) Columns {
	if onlyGold {
		return GoldOnlyColumns()
	}
	return DefaultColumns()
}

func (c Columns) width() int {
	m := 0
	for _, i := range []int{c.Id, c.Word, c.GoldPos, c.PredPos, c.GoldHead, c.GoldLabel, c.PredHead, c.PredLabel} {
		if i > m {
			m = i
		}
	}
	// one more column for the field tag
	return m + 2
}

func parseHead(value string) (int, error) {
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, fmt.Errorf("negative head %d", i)
	}
	return i, nil
}

// ParseToken builds a Token from the tab-split columns of a line.
func (c Columns) ParseToken(parts []string) (Token, error) {
	var t Token
	if len(parts) < c.width() {
		return t, fmt.Errorf("%w: expected at least %d columns, got %d", ErrFormat, c.width(), len(parts))
	}

	goldHead, err := parseHead(parts[c.GoldHead])
	if err != nil {
		return t, fmt.Errorf("%w: gold head (%s): %v", ErrFormat, parts[c.GoldHead], err)
	}

	predHead, err := parseHead(parts[c.PredHead])
	if err != nil {
		return t, fmt.Errorf("%w: predicted head (%s): %v", ErrFormat, parts[c.PredHead], err)
	}

	t = Token{
		Id:        parts[c.Id],
		Word:      parts[c.Word],
		GoldPos:   parts[c.GoldPos],
		PredPos:   parts[c.PredPos],
		GoldHead:  goldHead,
		GoldLabel: parts[c.GoldLabel],
		PredHead:  predHead,
		PredLabel: parts[c.PredLabel],
		FieldTag:  parts[len(parts)-1],
		Parts:     parts,
	}
	return t, nil
}

// ParseSentence builds a Sentence from a block of tab-split lines.
func (c Columns) ParseSentence(block [][]string) (Sentence, error) {
	s := make(Sentence, 0, len(block))
	for i, parts := range block {
		t, err := c.ParseToken(parts)
		if err != nil {
			return nil, fmt.Errorf("line %d of sentence: %w", i+1, err)
		}
		s = append(s, t)
	}
	return s, nil
}
