package sentence

import (
	"strings"
)

// Root is the head value of a token attached to the sentence root.
const Root = 0

// Field is the topological field kind of a token.
type Field int

const (
	FieldOther Field = iota
	FieldVF
	FieldMF
	FieldNF
)

// Topological field tags as found in the last column.
const (
	TagVF = "VF"
	TagLK = "LK"
	TagMF = "MF"
	TagNF = "NF"
	TagC  = "C"
)

// ParseField maps a field tag to the kinds the candidate search handles.
// Everything else, LK and C included, is FieldOther.
func ParseField(tag string) Field {
	switch tag {
	case TagVF:
		return FieldVF
	case TagMF:
		return FieldMF
	case TagNF:
		return FieldNF
	}
	return FieldOther
}

func (f Field) String() string {
	switch f {
	case FieldVF:
		return TagVF
	case FieldMF:
		return TagMF
	case FieldNF:
		return TagNF
	}
	return "other"
}

// prepositions are the preposition-like STTS tags: preposition, fused
// preposition and article, postposition.
var prepositions = map[string]bool{
	"APPR":    true,
	"APPRART": true,
	"APPO":    true,
}

// IsPreposition reports whether pos is a preposition-like tag.
func IsPreposition(pos string) bool {
	return prepositions[pos]
}

// IsNoun reports whether pos belongs to the noun family.
func IsNoun(pos string) bool {
	return strings.HasPrefix(pos, "N")
}

// IsVerb reports whether pos belongs to the verb family.
func IsVerb(pos string) bool {
	return strings.HasPrefix(pos, "V")
}

// Token represents a word of the sentence with gold and predicted
// annotations.
type Token struct {
	// The id column, kept as given in the input.
	Id string `json:"id"`

	// The unmodified word
	Word string `json:"word"`

	GoldPos string `json:"gold_pos"`
	PredPos string `json:"pred_pos"`

	// Heads are 1-based, Root denotes the sentence root.
	GoldHead  int    `json:"gold_head"`
	GoldLabel string `json:"gold_label"`
	PredHead  int    `json:"pred_head"`
	PredLabel string `json:"pred_label"`

	// The topological field tag, last column of the line.
	FieldTag string `json:"field"`

	// The raw tab-split columns, used for diagnostics.
	Parts []string `json:"-"`
}

// Field returns the topological field kind of the token.
func (t Token) Field() Field {
	return ParseField(t.FieldTag)
}

// GoldHeadIndex returns the 0-based index of the gold head, -1 for root.
func (t Token) GoldHeadIndex() int {
	return t.GoldHead - 1
}

// PredHeadIndex returns the 0-based index of the predicted head, -1 for root.
func (t Token) PredHeadIndex() int {
	return t.PredHead - 1
}

// Record returns the token line as read, tab separated.
func (t Token) Record() string {
	return strings.Join(t.Parts, "\t")
}

// Sentence is the ordered list of tokens of one input block. The index of a
// token is its position minus one.
type Sentence []Token

// Has reports whether i is a valid index in the sentence.
func (s Sentence) Has(i int) bool {
	return i >= 0 && i < len(s)
}

// GoldHeadPos returns the gold POS of the gold head of the token at i. It
// returns false when the token is attached to the root or the head is out
// of range.
func (s Sentence) GoldHeadPos(i int) (string, bool) {
	h := s[i].GoldHeadIndex()
	if !s.Has(h) {
		return "", false
	}
	return s[h].GoldPos, true
}
