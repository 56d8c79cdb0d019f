package inspect

import (
	"bytes"
	"testing"

	"github.com/bichngocdo/pp-attachment-candidate-extraction/candidate"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/extract"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/render"
	sent "github.com/bichngocdo/pp-attachment-candidate-extraction/sentence"
	st "github.com/bichngocdo/pp-attachment-candidate-extraction/sentence/sentencetest"
	"github.com/stretchr/testify/assert"
)

func newHandler(out *bytes.Buffer) *Handler {
	unsupported := st.Example()
	unsupported[4].Field = "C"

	sentences := []sent.Sentence{
		st.Sentence(st.Example()...),
		st.Sentence(unsupported...),
	}
	r := render.NewRenderer(out)
	r.HasColor = false
	return NewHandler(sentences, extract.NewDriver(extract.Options{}, nil), candidate.NewSearcher(nil), r, out)
}

func TestExecuteShowsSentence(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(&out)

	assert.True(t, h.Execute("1"))

	got := out.String()
	assert.Contains(t, got, "✍  1 Er legte das Buch auf den Tisch")
	assert.Contains(t, got, "5 auf field MF sub-clause false candidates [4:Buch 2:legte]")
	assert.Contains(t, got, "1 records")
	assert.Contains(t, got, "class 1")
}

func TestExecuteNavigation(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(&out)

	assert.True(t, h.Execute("next"))
	assert.Equal(t, 0, h.current)
	assert.True(t, h.Execute("next"))
	assert.Equal(t, 1, h.current)
	assert.Contains(t, out.String(), "unsupported topological field")
	assert.Contains(t, out.String(), "0 records")

	assert.True(t, h.Execute("next"))
	assert.Equal(t, 1, h.current)
	assert.Contains(t, out.String(), "no sentence 3")

	assert.True(t, h.Execute("prev"))
	assert.Equal(t, 0, h.current)
}

func TestExecuteInput(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(&out)

	assert.True(t, h.Execute(""))
	assert.True(t, h.Execute("zwei"))
	assert.Contains(t, out.String(), "not a sentence number: zwei")
	assert.True(t, h.Execute("0"))
	assert.Contains(t, out.String(), "no sentence 0")
	assert.False(t, h.Execute(" quit "))
}
