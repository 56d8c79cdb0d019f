// Package score turns candidate heads into labeled feature tuples.
package score

import (
	"sort"

	sent "github.com/bichngocdo/pp-attachment-candidate-extraction/sentence"
)

// Feature describes one candidate head of a preposition.
type Feature struct {
	// Index of the candidate in the sentence
	Index int    `json:"index"`
	Word  string `json:"word"`
	Pos   string `json:"pos"`
	Field string `json:"field"`

	// Signed token offset from the preposition
	AbsDist int `json:"abs_dist"`

	// Signed rank among the candidates on the same side of the preposition
	RelDist int `json:"rel_dist"`

	// 1 if the candidate is the gold head of a gold preposition
	Class int `json:"class"`
}

// Score returns the features of candidates sorted by position. candidates
// is sorted in place. Duplicate positions are scored once per occurrence and
// count as intervening candidates for their neighbours.
func Score(s sent.Sentence, pp int, candidates []int) []Feature {
	sort.Ints(candidates)

	correct := s[pp].GoldHeadIndex()
	isGoldPP := sent.IsPreposition(s[pp].GoldPos)

	features := make([]Feature, 0, len(candidates))
	for _, c := range candidates {
		features = append(features, Feature{
			Index:   c,
			Word:    s[c].Word,
			Pos:     s[c].PredPos,
			Field:   s[c].FieldTag,
			AbsDist: c - pp,
			RelDist: RelDist(pp, c, candidates),
			Class:   class(c == correct && isGoldPP),
		})
	}
	return features
}

// RelDist returns +1 or -1 by the side of c, moved away from zero by one
// for every candidate strictly between pp and c.
func RelDist(pp, c int, candidates []int) int {
	d := -1
	if pp < c {
		d = 1
	}
	for _, o := range candidates {
		switch {
		case pp < o && o < c:
			d++
		case c < o && o < pp:
			d--
		}
	}
	return d
}

func class(ok bool) int {
	if ok {
		return 1
	}
	return 0
}
