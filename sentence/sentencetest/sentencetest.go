// Package sentencetest builds sentences and CoNLL text for tests.
package sentencetest

import (
	"strconv"
	"strings"

	sent "github.com/bichngocdo/pp-attachment-candidate-extraction/sentence"
)

// PredRoot as Tok.PredHead attaches the token to the root in the
// predicted tree.
const PredRoot = -1

// Tok describes one token line. Pos is used for both the gold and the
// predicted POS unless PredPos is set. PredHead defaults to Head, PredRoot
// forces a predicted root attachment.
type Tok struct {
	Word     string
	Pos      string
	PredPos  string
	Head     int
	PredHead int
	Label    string
	Field    string
}

func (t Tok) parts(id int) []string {
	ppos := t.PredPos
	if ppos == "" {
		ppos = t.Pos
	}
	phead := t.PredHead
	switch {
	case phead == PredRoot:
		phead = 0
	case phead == 0:
		phead = t.Head
	}
	label := t.Label
	if label == "" {
		label = "_"
	}
	return []string{
		strconv.Itoa(id), t.Word, "_", t.Pos, ppos, "_",
		strconv.Itoa(t.Head), label, strconv.Itoa(phead), label, t.Field,
	}
}

// Block returns the tab-split lines of a sentence.
func Block(toks ...Tok) [][]string {
	block := make([][]string, 0, len(toks))
	for i, t := range toks {
		block = append(block, t.parts(i+1))
	}
	return block
}

// Sentence parses toks with the default column layout. It panics on
// malformed input, which only a broken test can produce.
func Sentence(toks ...Tok) sent.Sentence {
	s, err := sent.DefaultColumns().ParseSentence(Block(toks...))
	if err != nil {
		panic(err)
	}
	return s
}

// Conll renders sentences as tab separated text with blank lines between
// sentences.
func Conll(sents ...[]Tok) string {
	var b strings.Builder
	for i, toks := range sents {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, parts := range Block(toks...) {
			b.WriteString(strings.Join(parts, "\t"))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Example is the sentence "Er legte das Buch auf den Tisch": auf is a
// middle field preposition attached to legte, Tisch is its object.
func Example() []Tok {
	return []Tok{
		{Word: "Er", Pos: "PPER", Head: 2, Label: "SB", Field: "VF"},
		{Word: "legte", Pos: "VVFIN", Head: 0, Label: "ROOT", Field: "LK"},
		{Word: "das", Pos: "ART", Head: 4, Label: "NK", Field: "MF"},
		{Word: "Buch", Pos: "NN", Head: 2, Label: "OA", Field: "MF"},
		{Word: "auf", Pos: "APPR", Head: 2, Label: "MO", Field: "MF"},
		{Word: "den", Pos: "ART", Head: 7, Label: "NK", Field: "MF"},
		{Word: "Tisch", Pos: "NN", Head: 5, Label: "NK", Field: "MF"},
	}
}
