package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/bichngocdo/pp-attachment-candidate-extraction/render"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/storage"
)

func runsCommand(opts RunsOptions, ui UI) error {
	p := &Pool{}
	defer p.Close()

	repo, err := NewRunRepository(p, opts.DB)
	if err != nil {
		return err
	}

	if opts.Records != "" {
		return listRecords(repo, opts.Records, ui)
	}
	return listRuns(repo, ui)
}

func listRuns(repo storage.RunReader, ui UI) error {
	runs, err := repo.Runs()
	if err != nil {
		return err
	}

	for _, run := range runs {
		finished := "unfinished"
		if !run.Finished.IsZero() {
			finished = run.Finished.Sub(run.Started).Round(time.Millisecond).String()
		}
		_, _ = fmt.Fprintf(ui.Out, "📖 %s %s %s %s\n", run.Id, run.Input, run.Started.Format(time.DateTime), finished)
		_, _ = fmt.Fprintf(ui.Out, "   %s records %d gold %d covered %d correct %d (%.2f)\n",
			modes(run), run.NumRecords, run.Stats.NumGold, run.Stats.NumCovered,
			run.Stats.NumCorrectHead, run.Stats.Percent(run.Stats.NumCorrectHead))
	}
	return nil
}

func modes(run storage.Run) string {
	var m []string
	if run.Options.UseGoldObj {
		m = append(m, "use_gold_obj")
	}
	if run.Options.AddGoldHead {
		m = append(m, "add_gold_head")
	}
	if run.Options.OnlyNV {
		m = append(m, "only_nv")
	}
	if run.OnlyGold {
		m = append(m, "only_gold")
	}
	if len(m) == 0 {
		return "default"
	}
	return strings.Join(m, ",")
}

func listRecords(repo storage.RunReader, runId string, ui UI) error {
	records, err := repo.Records(runId)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no records for run %s", runId)
	}

	w := render.NewTextRenderer(ui.Out)
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
