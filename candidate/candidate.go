// Package candidate finds the plausible attachment heads of a preposition
// from the topological fields of the sentence and its predicted tree.
package candidate

import (
	"errors"
	"fmt"

	sent "github.com/bichngocdo/pp-attachment-candidate-extraction/sentence"
	"go.uber.org/zap"
)

var (
	// ErrUnsupportedField is returned for prepositions outside VF, MF and NF.
	ErrUnsupportedField = errors.New("unsupported topological field")

	// ErrNotPreposition is returned when the token at the given position
	// is not tagged as a preposition.
	ErrNotPreposition = errors.New("not a predicted preposition")
)

// Searcher runs the candidate search and reports diagnostics to its logger.
type Searcher struct {
	log *zap.Logger
}

// NewSearcher returns a Searcher logging to log. A nil log discards
// diagnostics.
func NewSearcher(log *zap.Logger) *Searcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Searcher{log: log}
}

// Find returns the candidate heads of the preposition at pp: the noun
// candidates in discovery order followed by the verb candidate, if any.
// Positions are not deduplicated.
func (sr *Searcher) Find(s sent.Sentence, pp int) ([]int, error) {
	nouns, err := sr.Nouns(s, pp)
	if err != nil {
		return nil, err
	}

	candidates := make([]int, 0, len(nouns)+1)
	candidates = append(candidates, nouns...)
	if v, ok := sr.Verb(s, pp); ok {
		candidates = append(candidates, v)
	}
	return candidates, nil
}

// Nouns dispatches on the field of the preposition at pp.
func (sr *Searcher) Nouns(s sent.Sentence, pp int) ([]int, error) {
	if !s.Has(pp) || !sent.IsPreposition(s[pp].PredPos) {
		return nil, fmt.Errorf("%w at index %d", ErrNotPreposition, pp)
	}

	switch s[pp].Field() {
	case sent.FieldMF:
		return NounsMF(s, pp), nil
	case sent.FieldVF:
		if lk, ok := FindRight(s, pp, sent.TagLK); ok {
			sr.log.Debug("left bracket of front field preposition",
				zap.String("id", s[pp].Id), zap.String("lk", s[lk].Id))
		}
		return NounsVF(s, pp), nil
	case sent.FieldNF:
		return NounsNF(s, pp), nil
	}

	sr.log.Warn("unknown topological field of preposition",
		zap.String("field", s[pp].FieldTag),
		zap.String("record", s[pp].Record()))
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedField, s[pp].FieldTag)
}

// NounsMF collects the nouns of the middle field left of pp, nearest first.
func NounsMF(s sent.Sentence, pp int) []int {
	return nounsLeft(s, pp-1, sent.TagMF)
}

// NounsVF collects the nouns of the front field left of pp. Unless pp
// directly follows a front field noun, the nouns of the first middle field
// right of pp are added.
func NounsVF(s sent.Sentence, pp int) []int {
	nouns := nounsLeft(s, pp-1, sent.TagVF)
	if followsNoun(s, pp, sent.TagVF) {
		return nouns
	}

	k := pp + 1
	for k < len(s) && s[k].FieldTag != sent.TagMF {
		k++
	}
	return append(nouns, nounsRight(s, k, sent.TagMF)...)
}

// NounsNF collects the nouns of the final field left of pp. Unless pp
// directly follows a final field noun, the nouns of the nearest middle field
// left of pp are added.
func NounsNF(s sent.Sentence, pp int) []int {
	nouns := nounsLeft(s, pp-1, sent.TagNF)
	if followsNoun(s, pp, sent.TagNF) {
		return nouns
	}

	k := pp - 1
	for k >= 0 && s[k].FieldTag != sent.TagMF {
		k--
	}
	return append(nouns, nounsLeft(s, k, sent.TagMF)...)
}

// followsNoun reports whether the token before pp is a noun in field tag.
func followsNoun(s sent.Sentence, pp int, tag string) bool {
	return pp > 0 && s[pp-1].FieldTag == tag && sent.IsNoun(s[pp-1].PredPos)
}

// nounsLeft scans from k to the left while the field is tag.
func nounsLeft(s sent.Sentence, k int, tag string) []int {
	var nouns []int
	for ; k >= 0 && s[k].FieldTag == tag; k-- {
		if sent.IsNoun(s[k].PredPos) {
			nouns = append(nouns, k)
		}
	}
	return nouns
}

// nounsRight scans from k to the right while the field is tag.
func nounsRight(s sent.Sentence, k int, tag string) []int {
	var nouns []int
	for ; k < len(s) && s[k].FieldTag == tag; k++ {
		if sent.IsNoun(s[k].PredPos) {
			nouns = append(nouns, k)
		}
	}
	return nouns
}

// Verb follows the predicted heads up from pp to the first verb. It gives
// up at the root, on a head outside the sentence, or after len(s) steps,
// which only happens on a cyclic tree.
func (sr *Searcher) Verb(s sent.Sentence, pp int) (int, bool) {
	k := pp
	for tries := 1; ; tries++ {
		if tries > len(s) {
			sr.log.Warn("circle in predicted tree", zap.String("id", s[pp].Id))
			return 0, false
		}
		if sent.IsVerb(s[k].PredPos) {
			return k, true
		}
		if s[k].PredHead == sent.Root {
			return 0, false
		}
		next := s[k].PredHeadIndex()
		if !s.Has(next) {
			sr.log.Warn("predicted head out of range",
				zap.String("id", s[k].Id), zap.Int("head", s[k].PredHead))
			return 0, false
		}
		k = next
	}
}

// FindLeft returns the nearest index left of i tagged with field.
func FindLeft(s sent.Sentence, i int, field string) (int, bool) {
	for j := i - 1; j >= 0; j-- {
		if s[j].FieldTag == field {
			return j, true
		}
	}
	return 0, false
}

// FindRight returns the nearest index right of i tagged with field.
func FindRight(s sent.Sentence, i int, field string) (int, bool) {
	for j := i + 1; j < len(s); j++ {
		if s[j].FieldTag == field {
			return j, true
		}
	}
	return 0, false
}

// InSubClause reports whether a complementizer field (C) precedes i before
// any left bracket.
func InSubClause(s sent.Sentence, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch s[j].FieldTag {
		case sent.TagC:
			return true
		case sent.TagLK:
			return false
		}
	}
	return false
}
