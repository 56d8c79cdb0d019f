// Package inspect is an interactive prompt showing the candidate search on
// single sentences of a corpus.
package inspect

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/bichngocdo/pp-attachment-candidate-extraction/candidate"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/extract"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/render"
	sent "github.com/bichngocdo/pp-attachment-candidate-extraction/sentence"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/stat"
)

const (
	cmdQuit = "quit"
	cmdNext = "next"
	cmdPrev = "prev"
)

type Handler struct {
	Sentences []sent.Sentence
	Driver    *extract.Driver
	Searcher  *candidate.Searcher
	Renderer  *render.Renderer
	Out       io.Writer

	// 0-based index of the sentence shown last, -1 before the first
	current int
}

func NewHandler(sentences []sent.Sentence, d *extract.Driver, sr *candidate.Searcher, r *render.Renderer, out io.Writer) *Handler {
	return &Handler{
		Sentences: sentences,
		Driver:    d,
		Searcher:  sr,
		Renderer:  r,
		Out:       out,
		current:   -1,
	}
}

func (h *Handler) Run() error {
	fmt.Fprintf(h.Out, "🔑 %d sentences. <number>, next, prev, Ctrl+X: toggle color, 🔧 quit\n", len(h.Sentences))

	history := []string{}
	for {
		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("ppcand inspect"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.HasColor = !h.Renderer.HasColor
					fmt.Fprintf(h.Out, "Color set to %t\n", h.Renderer.HasColor)
				}}),
		)

		history = append(history, in)
		if !h.Execute(in) {
			return nil
		}
	}
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{
		{Text: cmdNext, Description: "show the next sentence"},
		{Text: cmdPrev, Description: "show the previous sentence"},
		{Text: cmdQuit, Description: "leave"},
	}
	if in.TextBeforeCursor() == "" {
		return []prompt.Suggest{}
	}
	return prompt.FilterHasPrefix(s, in.GetWordBeforeCursor(), true)
}

// Execute runs one prompt line. It returns false when the user quits.
func (h *Handler) Execute(in string) bool {
	in = strings.TrimSpace(in)
	switch in {
	case "":
		return true
	case cmdQuit:
		return false
	case cmdNext:
		h.show(h.current + 1)
		return true
	case cmdPrev:
		h.show(h.current - 1)
		return true
	}

	n, err := strconv.Atoi(in)
	if err != nil {
		fmt.Fprintf(h.Out, "✍  not a sentence number: %s\n", in)
		return true
	}
	h.show(n - 1)
	return true
}

// show prints the sentence at index i.
func (h *Handler) show(i int) {
	if i < 0 || i >= len(h.Sentences) {
		fmt.Fprintf(h.Out, "✍  no sentence %d, there are %d\n", i+1, len(h.Sentences))
		return
	}
	h.current = i
	s := h.Sentences[i]

	colors := map[int]string{}
	for p, t := range s {
		if sent.IsPreposition(t.PredPos) {
			colors[p] = render.Yellow256
		}
	}
	h.Renderer.Sentence(s, colors, fmt.Sprintf("✍  %d ", i+1))
	fmt.Fprintln(h.Out)
	h.Renderer.Tokens(s)
	fmt.Fprintln(h.Out)

	for p, t := range s {
		if _, ok := colors[p]; !ok {
			continue
		}
		found, err := h.Searcher.Find(s, p)
		if err != nil {
			fmt.Fprintf(h.Out, "  %s %s: %v\n", t.Id, t.Word, err)
			continue
		}
		fmt.Fprintf(h.Out, "  %s %s field %s sub-clause %t candidates %s\n",
			t.Id, t.Word, t.FieldTag, candidate.InSubClause(s, p), h.words(s, found))
	}

	var c extract.Collector
	if err := h.Driver.Sentence(s, stat.NewHandler(), &c); err != nil {
		fmt.Fprintf(h.Out, "✍  %v\n", err)
		return
	}
	fmt.Fprintf(h.Out, "\n%d records\n", len(c.Records))
	for _, rec := range c.Records {
		h.Renderer.Record(rec)
	}
}

func (h *Handler) words(s sent.Sentence, idx []int) string {
	words := make([]string, len(idx))
	for i, k := range idx {
		words[i] = s[k].Id + ":" + s[k].Word
	}
	return "[" + strings.Join(words, " ") + "]"
}
