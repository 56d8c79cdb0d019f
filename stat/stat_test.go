package stat

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	h := NewHandler()
	h.Aggregate(Instance{GoldPP: true, PredPP: true, Counted: true})
	h.Aggregate(Instance{GoldPP: true, Counted: true})
	h.Aggregate(Instance{PredPP: true, Counted: true})
	h.Aggregate(Instance{GoldPP: true, PredPP: true, Counted: false})
	h.Aggregate(Instance{Counted: true})

	s := h.Get()
	assert.Equal(t, 2, s.NumGold)
	assert.Equal(t, 2, s.NumRetrieved)
	assert.Equal(t, 1, s.NumFound)
}

func TestOutcomesCountTruePrepositionsOnly(t *testing.T) {
	h := NewHandler()
	gold := Instance{GoldPP: true, PredPP: true, Counted: true}
	wrong := Instance{PredPP: true, Counted: true}
	skipped := Instance{GoldPP: true, PredPP: true}

	for _, in := range []Instance{gold, wrong, skipped} {
		h.WrongField(in)
		h.NoCandidates(in)
		h.NoObject(in)
		h.Written(in, 2, true)
	}
	h.Written(gold, 1, false)

	s := h.Get()
	assert.Equal(t, 1, s.ErrField)
	assert.Equal(t, 1, s.ErrNoCandidates)
	assert.Equal(t, 1, s.ErrNoObject)
	assert.Equal(t, 2, s.NumCovered)
	assert.Equal(t, 1, s.NumCorrectHead)
}

func TestPercent(t *testing.T) {
	assert.Zero(t, Stats{}.Percent(3))
	assert.InDelta(t, 50.0, Stats{NumGold: 4}.Percent(2), 1e-9)
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	s := Stats{NumGold: 4, NumRetrieved: 5, NumFound: 3, NumCovered: 2, NumCorrectHead: 1, ErrField: 1, ErrNoObject: 2}
	require.NoError(t, Report(&buf, s))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 10)
	assert.True(t, strings.HasPrefix(lines[0], "No. gold     :     4 (100.00)"), lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "No. found    :     3 (75.00)"), lines[2])
	assert.True(t, strings.HasPrefix(lines[4], "No. correct  :     1 (25.00)"), lines[4])
	assert.Equal(t, "  wrong TF     : 1", lines[7])
	assert.Equal(t, "  no object    : 2", lines[9])
}
