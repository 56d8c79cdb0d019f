// Package extract runs the candidate search over a corpus and emits one
// record per predicted preposition together with evaluation counters.
package extract

import (
	"errors"
	"fmt"
	"io"

	"github.com/bichngocdo/pp-attachment-candidate-extraction/candidate"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/score"
	sent "github.com/bichngocdo/pp-attachment-candidate-extraction/sentence"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/stat"
	"go.uber.org/zap"
)

// Info is the word, predicted POS and field of a token.
type Info struct {
	Word  string `json:"word"`
	Pos   string `json:"pos"`
	Field string `json:"field"`
}

func infoOf(t sent.Token) Info {
	return Info{Word: t.Word, Pos: t.PredPos, Field: t.FieldTag}
}

// Record is the output for one preposition instance.
type Record struct {
	// Id is the id column of the preposition.
	Id         string          `json:"id"`
	PP         Info            `json:"pp"`
	Object     Info            `json:"obj"`
	Candidates []score.Feature `json:"candidates"`
}

// BlockReader yields sentence blocks until io.EOF.
type BlockReader interface {
	Next() ([][]string, error)
}

// RecordWriter receives the records in encounter order.
type RecordWriter interface {
	Write(rec Record) error
}

// Options select the extraction mode.
type Options struct {
	// Find the object of the preposition in the gold tree instead of the
	// predicted one.
	UseGoldObj bool `json:"use_gold_obj" yaml:"use_gold_obj"`

	// Add the gold head to the candidates and only write true prepositions
	// with a noun or verb head and more than one candidate.
	AddGoldHead bool `json:"add_gold_head" yaml:"add_gold_head"`

	// Only count instances whose gold head is a noun or a verb.
	OnlyNV bool `json:"only_nv" yaml:"only_nv"`

	// The column layout of the input, DefaultColumns when zero.
	Columns sent.Columns `json:"-" yaml:"-"`
}

// Driver applies the candidate search and the scorer to every predicted
// preposition.
type Driver struct {
	opts     Options
	log      *zap.Logger
	searcher *candidate.Searcher
}

// NewDriver returns a Driver. A nil log discards diagnostics.
func NewDriver(opts Options, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Columns == (sent.Columns{}) {
		opts.Columns = sent.DefaultColumns()
	}
	return &Driver{
		opts:     opts,
		log:      log,
		searcher: candidate.NewSearcher(log),
	}
}

// Run processes every block of r and writes the records to w. Only
// malformed input and write failures stop the run.
func (d *Driver) Run(r BlockReader, w RecordWriter) (stat.Stats, error) {
	h := stat.NewHandler()
	for n := 1; ; n++ {
		block, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return h.Get(), err
		}

		s, err := d.opts.Columns.ParseSentence(block)
		if err != nil {
			return h.Get(), fmt.Errorf("sentence %d: %w", n, err)
		}

		if err := d.Sentence(s, h, w); err != nil {
			return h.Get(), err
		}
	}
	return h.Get(), nil
}

// Sentence processes the tokens of s left to right.
func (d *Driver) Sentence(s sent.Sentence, h *stat.Handler, w RecordWriter) error {
	for p, t := range s {
		headPos, ok := s.GoldHeadPos(p)
		nvHead := ok && (sent.IsNoun(headPos) || sent.IsVerb(headPos))

		in := stat.Instance{
			GoldPP:  sent.IsPreposition(t.GoldPos),
			PredPP:  sent.IsPreposition(t.PredPos),
			Counted: !d.opts.OnlyNV || nvHead,
		}
		h.Aggregate(in)

		if !in.PredPP {
			continue
		}

		candidates, err := d.searcher.Find(s, p)
		if errors.Is(err, candidate.ErrUnsupportedField) {
			h.WrongField(in)
			continue
		}
		if err != nil {
			return err
		}

		correct := t.GoldHeadIndex()
		if d.opts.AddGoldHead {
			if s.Has(correct) && !contains(candidates, correct) {
				candidates = append(candidates, correct)
			}
			if !in.GoldPP || !nvHead {
				continue
			}
			if len(candidates) <= 1 {
				continue
			}
		} else if len(candidates) == 0 {
			h.NoCandidates(in)
			d.log.Warn("cannot find candidates", zap.String("record", t.Record()))
			continue
		}

		obj, ok := d.Object(s, p)
		if !ok {
			h.NoObject(in)
			d.log.Warn("no object", zap.String("record", t.Record()))
			continue
		}

		hasCorrect := contains(candidates, correct)
		rec := Record{
			Id:         t.Id,
			PP:         infoOf(t),
			Object:     infoOf(s[obj]),
			Candidates: score.Score(s, p, candidates),
		}
		h.Written(in, len(candidates), hasCorrect)

		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write record %s: %w", t.Id, err)
		}
	}
	return nil
}

// Object returns the first token attached to the preposition at pp, in the
// gold or the predicted tree depending on the options.
func (d *Driver) Object(s sent.Sentence, pp int) (int, bool) {
	for k, t := range s {
		head := t.PredHeadIndex()
		if d.opts.UseGoldObj {
			head = t.GoldHeadIndex()
		}
		if head == pp {
			return k, true
		}
	}
	return 0, false
}

func contains(xs []int, x int) bool {
	for _, y := range xs {
		if y == x {
			return true
		}
	}
	return false
}

// Collector is a RecordWriter keeping the records in memory.
type Collector struct {
	Records []Record
}

func (c *Collector) Write(rec Record) error {
	c.Records = append(c.Records, rec)
	return nil
}
