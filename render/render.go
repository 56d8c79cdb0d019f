package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bichngocdo/pp-attachment-candidate-extraction/extract"
	sent "github.com/bichngocdo/pp-attachment-candidate-extraction/sentence"
)

const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatSQLite = "sqlite"

	DefaultFormat = FormatText
)

var (
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Off     = "\033[0m"
	//Yellow256  = "\033[1;38;5;202m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
)

func SupportedFormats() []string {
	return []string{FormatText, FormatJSON, FormatSQLite}
}

// TextRenderer writes one space separated line per record:
//
//	id pp_word pp_pos pp_field obj_word obj_pos obj_field [word pos field abs_dist rel_dist class]*
type TextRenderer struct {
	W io.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{W: w}
}

func (r *TextRenderer) Write(rec extract.Record) error {
	_, err := io.WriteString(r.W, Line(rec)+"\n")
	return err
}

// Line returns the text form of rec without the line break.
func Line(rec extract.Record) string {
	fields := make([]string, 0, 7+6*len(rec.Candidates))
	fields = append(fields,
		rec.Id,
		rec.PP.Word, rec.PP.Pos, rec.PP.Field,
		rec.Object.Word, rec.Object.Pos, rec.Object.Field,
	)
	for _, c := range rec.Candidates {
		fields = append(fields,
			c.Word, c.Pos, c.Field,
			strconv.Itoa(c.AbsDist),
			strconv.Itoa(c.RelDist),
			strconv.Itoa(c.Class),
		)
	}
	return strings.Join(fields, " ")
}

var _ extract.RecordWriter = (*TextRenderer)(nil)

// Renderer prints sentences for interactive inspection.
type Renderer struct {
	W io.Writer

	HasColor bool
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w, HasColor: true}
}

// Sentence prints the words of s on one line. Words at the indexes of
// colors are printed in the given color.
func (r *Renderer) Sentence(s sent.Sentence, colors map[int]string, prefix string) {
	fmt.Fprintf(r.W, "%s%s\n", prefix, r.SentenceString(s, colors))
}

func (r *Renderer) SentenceString(s sent.Sentence, colors map[int]string) string {
	words := make([]string, len(s))
	for i, t := range s {
		words[i] = r.color(t.Word, colors[i])
	}
	return strings.Join(words, " ")
}

// Tokens prints one token per line with its gold and predicted annotation.
func (r *Renderer) Tokens(s sent.Sentence) {
	for i, t := range s {
		fmt.Fprintf(r.W, "%4d %6s %20q %8s %8s %4d %8s %4d %8s %4s\n",
			i, t.Id, t.Word, t.GoldPos, t.PredPos, t.GoldHead, t.GoldLabel, t.PredHead, t.PredLabel, t.FieldTag)
	}
}

// Record prints the candidate features of rec, one per line.
func (r *Renderer) Record(rec extract.Record) {
	fmt.Fprintf(r.W, "  %s %s (%s, %s) object %s\n", rec.Id, r.color(rec.PP.Word, Yellow256), rec.PP.Pos, rec.PP.Field, rec.Object.Word)
	for _, c := range rec.Candidates {
		word := c.Word
		if c.Class == 1 {
			word = r.color(word, Green)
		}
		fmt.Fprintf(r.W, "    %-20s %8s %4s abs %+3d rel %+3d class %d\n", word, c.Pos, c.Field, c.AbsDist, c.RelDist, c.Class)
	}
}

func (r *Renderer) color(word, color string) string {
	if !r.HasColor || color == "" {
		return word
	}
	return color + word + Off
}
