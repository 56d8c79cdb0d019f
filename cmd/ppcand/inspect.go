package main

import (
	"fmt"

	"github.com/bichngocdo/pp-attachment-candidate-extraction/candidate"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/extract"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/file"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/inspect"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/render"
	sent "github.com/bichngocdo/pp-attachment-candidate-extraction/sentence"
)

func inspectCommand(opts InspectOptions, ui UI) error {
	sentences, err := readSentences(opts.Input, opts.Extract().Columns)
	if err != nil {
		return err
	}

	log := newLogger(ui.Err, opts.Verbose)
	defer func() { _ = log.Sync() }()

	r := render.NewRenderer(ui.Out)
	r.HasColor = !opts.NoColor

	h := inspect.NewHandler(sentences, extract.NewDriver(opts.Extract(), log), candidate.NewSearcher(log), r, ui.Out)
	return h.Run()
}

func readSentences(path string, cols sent.Columns) ([]sent.Sentence, error) {
	blocks, err := file.ReadFile(path)
	if err != nil {
		return nil, err
	}

	sentences := make([]sent.Sentence, 0, len(blocks))
	for i, b := range blocks {
		s, err := cols.ParseSentence(b)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", i+1, err)
		}
		sentences = append(sentences, s)
	}
	return sentences, nil
}
