package stat

import (
	"fmt"
	"io"
)

// Stats are the evaluation counters of an extraction run.
type Stats struct {
	// true prepositions, gold POS is a preposition tag
	NumGold int `json:"num_gold"`
	// predicted prepositions
	NumRetrieved int `json:"num_retrieved"`
	// both gold and predicted POS are preposition tags
	NumFound int `json:"num_found"`
	// true prepositions written with some candidates
	NumCovered int `json:"num_covered"`
	// true prepositions whose gold head is among the candidates
	NumCorrectHead int `json:"num_correct_head"`

	ErrField        int `json:"err_field"`
	ErrNoCandidates int `json:"err_no_candidates"`
	ErrNoObject     int `json:"err_no_object"`
}

// Percent returns n as a percentage of NumGold, 0 when there is no gold
// preposition.
func (s Stats) Percent(n int) float64 {
	if s.NumGold == 0 {
		return 0
	}
	return 100 * float64(n) / float64(s.NumGold)
}

// Handler accumulates Stats over the instances of a run.
type Handler struct {
	stats Stats
}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Get() Stats {
	return h.stats
}

// Instance is what the driver knows about one token when it updates the
// counters.
type Instance struct {
	GoldPP bool
	PredPP bool

	// Counted is false when counting is restricted to noun and verb heads
	// and the gold head is neither.
	Counted bool
}

// Aggregate updates the counters every token contributes to.
func (h *Handler) Aggregate(in Instance) {
	if !in.Counted {
		return
	}
	if in.GoldPP {
		h.stats.NumGold++
	}
	if in.PredPP {
		h.stats.NumRetrieved++
	}
	if in.GoldPP && in.PredPP {
		h.stats.NumFound++
	}
}

// The per-instance outcomes below only count true prepositions.

func (h *Handler) WrongField(in Instance) {
	if in.GoldPP && in.Counted {
		h.stats.ErrField++
	}
}

func (h *Handler) NoCandidates(in Instance) {
	if in.GoldPP && in.Counted {
		h.stats.ErrNoCandidates++
	}
}

func (h *Handler) NoObject(in Instance) {
	if in.GoldPP && in.Counted {
		h.stats.ErrNoObject++
	}
}

// Written records a written instance with numCandidates candidates.
func (h *Handler) Written(in Instance, numCandidates int, hasCorrectHead bool) {
	if !in.GoldPP || !in.Counted {
		return
	}
	if numCandidates > 0 {
		h.stats.NumCovered++
	}
	if hasCorrectHead {
		h.stats.NumCorrectHead++
	}
}

// Report prints the counters in the end-of-run layout.
func Report(w io.Writer, s Stats) error {
	lines := []string{
		fmt.Sprintf("No. gold     : %5d (%5.2f) i.e., no. true prepositions (gold POS tags are prepositions)", s.NumGold, s.Percent(s.NumGold)),
		fmt.Sprintf("No. retrieved: %5d i.e., no. predicted prepositions (predicted POS tags are prepositions)", s.NumRetrieved),
		fmt.Sprintf("No. found    : %5d (%5.2f) i.e., no. instances that both true and predicted POS tags are prepositions", s.NumFound, s.Percent(s.NumFound)),
		fmt.Sprintf("No. covered  : %5d (%5.2f) i.e. no. true prepositions that have some head candidates", s.NumCovered, s.Percent(s.NumCovered)),
		fmt.Sprintf("No. correct  : %5d (%5.2f) i.e. no. true prepositions of which the true head is among the candidates", s.NumCorrectHead, s.Percent(s.NumCorrectHead)),
		"",
		"Non attachment cases",
		fmt.Sprintf("  wrong TF     : %d", s.ErrField),
		fmt.Sprintf("  no candidates: %d", s.ErrNoCandidates),
		fmt.Sprintf("  no object    : %d", s.ErrNoObject),
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
