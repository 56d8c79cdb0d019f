package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bichngocdo/pp-attachment-candidate-extraction/render"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/storage"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/storage/filesystem"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/storage/sqlite/zombiezen"
)

// newLogger writes diagnostics to w in the console layout. Debug entries
// are kept only when verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""

	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// NewRecordStore opens the destination of the records of one run.
func NewRecordStore(p *Pool, opts ExtractOptions) (storage.RecordStore, error) {
	if opts.Format != render.FormatSQLite {
		return filesystem.Create(opts.Output, opts.Format)
	}

	pool, err := p.Open(opts.Output)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewRunStore(pool).Begin(storage.Run{
		Input:    opts.Input,
		Options:  opts.Extract(),
		OnlyGold: opts.OnlyGold,
	})
}

// NewRunRepository opens an existing run database.
func NewRunRepository(p *Pool, path string) (storage.RunRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("repository is a directory: %s", path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewRunStore(pool), nil
}
