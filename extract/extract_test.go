package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/bichngocdo/pp-attachment-candidate-extraction/file"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/score"
	sent "github.com/bichngocdo/pp-attachment-candidate-extraction/sentence"
	st "github.com/bichngocdo/pp-attachment-candidate-extraction/sentence/sentencetest"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/stat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func run(t *testing.T, opts Options, sents ...[]st.Tok) ([]Record, stat.Stats, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	var c Collector
	stats, err := NewDriver(opts, zap.New(core)).Run(file.NewReader(strings.NewReader(st.Conll(sents...))), &c)
	require.NoError(t, err)
	return c.Records, stats, logs
}

func indexes(rec Record) []int {
	var xs []int
	for _, f := range rec.Candidates {
		xs = append(xs, f.Index)
	}
	return xs
}

// exampleTischHead attaches auf to Tisch in the gold tree, a head the
// middle field scan never proposes.
func exampleTischHead() []st.Tok {
	toks := st.Example()
	toks[4].Head = 7
	toks[4].PredHead = 2
	toks[6].Head = 2
	toks[6].PredHead = 5
	return toks
}

func TestRunExample(t *testing.T) {
	recs, stats, logs := run(t, Options{}, st.Example())

	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, "5", rec.Id)
	assert.Equal(t, Info{Word: "auf", Pos: "APPR", Field: "MF"}, rec.PP)
	assert.Equal(t, Info{Word: "Tisch", Pos: "NN", Field: "MF"}, rec.Object)
	assert.Equal(t, []score.Feature{
		{Index: 1, Word: "legte", Pos: "VVFIN", Field: "LK", AbsDist: -3, RelDist: -2, Class: 1},
		{Index: 3, Word: "Buch", Pos: "NN", Field: "MF", AbsDist: -1, RelDist: -1, Class: 0},
	}, rec.Candidates)

	assert.Equal(t, stat.Stats{NumGold: 1, NumRetrieved: 1, NumFound: 1, NumCovered: 1, NumCorrectHead: 1}, stats)
	assert.Equal(t, 0, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestRunGoldHeadOutsideCandidates(t *testing.T) {
	recs, stats, _ := run(t, Options{}, exampleTischHead())

	require.Len(t, recs, 1)
	assert.Equal(t, []int{1, 3}, indexes(recs[0]))
	for _, f := range recs[0].Candidates {
		assert.Zero(t, f.Class)
	}
	assert.Equal(t, 1, stats.NumCovered)
	assert.Equal(t, 0, stats.NumCorrectHead)
}

func TestRunAddGoldHead(t *testing.T) {
	recs, stats, _ := run(t, Options{AddGoldHead: true}, exampleTischHead())

	require.Len(t, recs, 1)
	assert.Equal(t, []int{1, 3, 6}, indexes(recs[0]))
	assert.Equal(t, 1, recs[0].Candidates[2].Class)
	assert.Equal(t, 1, recs[0].Candidates[2].RelDist)
	assert.Equal(t, 1, stats.NumCorrectHead)
}

func TestRunAddGoldHeadSkipsUninformative(t *testing.T) {
	// mit has no noun to its left, its only candidate is the gold head kam
	single := []st.Tok{
		{Word: "Er", Pos: "PPER", Head: 2, Field: "VF"},
		{Word: "kam", Pos: "VVFIN", Head: 0, Field: "LK"},
		{Word: "mit", Pos: "APPR", Head: 2, Field: "MF"},
		{Word: "Freunden", Pos: "NN", Head: 3, Field: "MF"},
	}
	// bis is a gold adverb
	adverb := []st.Tok{
		{Word: "Er", Pos: "PPER", Head: 2, Field: "VF"},
		{Word: "kam", Pos: "VVFIN", Head: 0, Field: "LK"},
		{Word: "Peter", Pos: "NE", Head: 2, Field: "MF"},
		{Word: "bis", Pos: "ADV", PredPos: "APPR", Head: 2, Field: "MF"},
		{Word: "morgen", Pos: "ADV", Head: 4, Field: "MF"},
	}

	recs, stats, _ := run(t, Options{AddGoldHead: true}, single, adverb)
	assert.Empty(t, recs)
	assert.Equal(t, 1, stats.NumGold)
	assert.Equal(t, 2, stats.NumRetrieved)

	recs, _, _ = run(t, Options{}, single, adverb)
	require.Len(t, recs, 2)
}

func TestRunAddGoldHeadAlwaysContainsGoldHead(t *testing.T) {
	sents := [][]st.Tok{st.Example(), exampleTischHead()}
	recs, _, _ := run(t, Options{AddGoldHead: true}, sents...)
	require.Len(t, recs, 2)

	for i, rec := range recs {
		gold := sents[i][4].Head - 1
		assert.Contains(t, indexes(rec), gold)
	}
}

func TestRunUnsupportedField(t *testing.T) {
	toks := st.Example()
	toks[4].Field = "C"

	recs, stats, logs := run(t, Options{}, toks)
	assert.Empty(t, recs)
	assert.Equal(t, 1, stats.ErrField)
	assert.Equal(t, 1, logs.FilterMessage("unknown topological field of preposition").Len())
}

func TestRunNoCandidates(t *testing.T) {
	toks := []st.Tok{
		{Word: "Heute", Pos: "ADV", Head: 0, Field: "MF"},
		{Word: "mit", Pos: "APPR", Head: 1, Field: "MF"},
		{Word: "Freunden", Pos: "NN", Head: 2, Field: "MF"},
	}

	recs, stats, logs := run(t, Options{}, toks)
	assert.Empty(t, recs)
	assert.Equal(t, 1, stats.ErrNoCandidates)
	assert.Equal(t, 0, stats.NumCovered)

	entries := logs.FilterMessage("cannot find candidates").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["record"], "mit")
}

func TestRunNoObject(t *testing.T) {
	toks := st.Example()
	toks[6].Head = 2

	recs, stats, logs := run(t, Options{}, toks)
	assert.Empty(t, recs)
	assert.Equal(t, 1, stats.ErrNoObject)
	assert.Equal(t, 0, stats.NumCovered)
	assert.Equal(t, 1, logs.FilterMessage("no object").Len())
}

func TestRunUseGoldObj(t *testing.T) {
	toks := st.Example()
	// the parser attached Tisch to legte
	toks[6].PredHead = 2

	recs, stats, _ := run(t, Options{}, toks)
	assert.Empty(t, recs)
	assert.Equal(t, 1, stats.ErrNoObject)

	recs, _, _ = run(t, Options{UseGoldObj: true}, toks)
	require.Len(t, recs, 1)
	assert.Equal(t, "Tisch", recs[0].Object.Word)
}

func TestRunOnlyNV(t *testing.T) {
	// seit is attached to the adverb erst
	adv := []st.Tok{
		{Word: "Er", Pos: "PPER", Head: 2, Field: "VF"},
		{Word: "ist", Pos: "VAFIN", Head: 0, Field: "LK"},
		{Word: "Peter", Pos: "NE", Head: 2, Field: "MF"},
		{Word: "erst", Pos: "ADV", Head: 2, Field: "MF"},
		{Word: "seit", Pos: "APPR", Head: 4, Field: "MF"},
		{Word: "gestern", Pos: "ADV", Head: 5, Field: "MF"},
	}

	_, all, _ := run(t, Options{}, st.Example(), adv)
	assert.Equal(t, 2, all.NumGold)
	assert.Equal(t, 2, all.NumRetrieved)

	recs, nv, _ := run(t, Options{OnlyNV: true}, st.Example(), adv)
	assert.Len(t, recs, 2)
	assert.Equal(t, 1, nv.NumGold)
	assert.Equal(t, 1, nv.NumRetrieved)
	assert.Equal(t, 1, nv.NumFound)
	assert.Equal(t, 1, nv.NumCovered)
}

func TestRunOnlyGold(t *testing.T) {
	toks := st.Example()
	// predicted columns disagree with gold, a gold-only layout ignores them
	toks[4].PredHead = 4
	toks[6].PredHead = 2
	toks = append(toks, st.Tok{Word: "vor", Pos: "APPR", Head: 2, Field: "NF"}, st.Tok{Word: "Ort", Pos: "NN", Head: 8, Field: "NF"})

	recs, stats, _ := run(t, Options{Columns: sent.GoldOnlyColumns()}, toks)
	require.Len(t, recs, 2)
	assert.Equal(t, "Tisch", recs[0].Object.Word)
	assert.Equal(t, stats.NumGold, stats.NumRetrieved)
	assert.Equal(t, stats.NumGold, stats.NumFound)
	assert.Equal(t, 2, stats.NumCorrectHead)
}

func TestRunAbsDistNeverZero(t *testing.T) {
	recs, _, _ := run(t, Options{AddGoldHead: true}, st.Example(), exampleTischHead())
	for _, rec := range recs {
		for _, f := range rec.Candidates {
			assert.NotZero(t, f.AbsDist)
		}
	}
}

func TestRunMalformedInput(t *testing.T) {
	in := st.Conll(st.Example()) + "\n1\tEr\t_\tPPER\tPPER\t_\tzwei\tSB\t2\tSB\tVF\n"

	var c Collector
	stats, err := NewDriver(Options{}, nil).Run(file.NewReader(strings.NewReader(in)), &c)
	require.ErrorIs(t, err, sent.ErrFormat)
	assert.Contains(t, err.Error(), "sentence 2")
	assert.Len(t, c.Records, 1)
	assert.Equal(t, 1, stats.NumGold)
}

type failingWriter struct{}

func (failingWriter) Write(Record) error { return errors.New("disk full") }

func TestRunWriteError(t *testing.T) {
	_, err := NewDriver(Options{}, nil).Run(file.NewReader(strings.NewReader(st.Conll(st.Example()))), failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestObject(t *testing.T) {
	d := NewDriver(Options{}, nil)
	s := st.Sentence(st.Example()...)

	obj, ok := d.Object(s, 4)
	require.True(t, ok)
	assert.Equal(t, 6, obj)

	_, ok = d.Object(s, 0)
	assert.False(t, ok)
}
