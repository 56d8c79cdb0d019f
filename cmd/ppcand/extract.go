package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gosuri/uiprogress"

	"github.com/bichngocdo/pp-attachment-candidate-extraction/extract"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/file"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/stat"
)

func extractCommand(opts ExtractOptions, ui UI) error {
	log := newLogger(ui.Err, opts.Verbose)
	defer func() { _ = log.Sync() }()

	f, err := os.Open(opts.Input)
	if err != nil {
		return fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if opts.Progress {
		info, err := f.Stat()
		if err != nil {
			return err
		}
		pr := newProgressReader(f, info.Size(), ui.Err)
		defer pr.Stop()
		r = pr
	}

	p := &Pool{}
	defer p.Close()

	store, err := NewRecordStore(p, opts)
	if err != nil {
		return err
	}

	d := extract.NewDriver(opts.Extract(), log)
	stats, runErr := d.Run(file.NewReader(r), store)
	if err := store.Finish(stats); err != nil {
		return errors.Join(runErr, err)
	}
	if runErr != nil {
		return runErr
	}

	if w, ok := store.(interface{ RunId() string }); ok {
		_, _ = fmt.Fprintf(ui.Out, "Stored run %s in %s\n", w.RunId(), opts.Output)
	}
	return stat.Report(ui.Out, stats)
}

// progressReader advances a bar by the bytes read from the input.
type progressReader struct {
	r    io.Reader
	prog *uiprogress.Progress
	bar  *uiprogress.Bar
	n    int
}

func newProgressReader(r io.Reader, size int64, out io.Writer) *progressReader {
	prog := uiprogress.New()
	prog.SetOut(out)
	prog.Start()

	bar := prog.AddBar(int(size))
	bar.AppendCompleted()
	bar.PrependElapsed()
	return &progressReader{r: r, prog: prog, bar: bar}
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	pr.n += n
	_ = pr.bar.Set(pr.n)
	return n, err
}

func (pr *progressReader) Stop() {
	pr.prog.Stop()
}
