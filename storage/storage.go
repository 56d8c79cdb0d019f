package storage

import (
	"time"

	"github.com/bichngocdo/pp-attachment-candidate-extraction/extract"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/stat"
)

// Run describes one extraction over an input file.
type Run struct {
	Id    string
	Input string

	Options  extract.Options
	OnlyGold bool

	Started  time.Time
	Finished time.Time

	NumRecords int
	Stats      stat.Stats
}

// RecordStore receives the records of a run and is closed with the final
// counters.
type RecordStore interface {
	extract.RecordWriter

	// Finish stores the counters and releases the store.
	Finish(stats stat.Stats) error
}

// RunReader defines read operations over stored runs
type RunReader interface {
	// Runs returns the stored runs, oldest first.
	Runs() ([]Run, error)

	// Records returns the records of a run in the order they were written.
	Records(runId string) ([]extract.Record, error)
}

// RunRepository starts new runs and reads stored ones.
type RunRepository interface {
	RunReader

	// Begin registers run and returns the store for its records.
	Begin(run Run) (RecordStore, error)
}
