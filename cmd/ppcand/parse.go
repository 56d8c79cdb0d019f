package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bichngocdo/pp-attachment-candidate-extraction/config"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/extract"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/render"
	sent "github.com/bichngocdo/pp-attachment-candidate-extraction/sentence"
)

// ModeOptions select how instances are searched and counted.
type ModeOptions struct {
	UseGoldObj  bool
	AddGoldHead bool
	OnlyGold    bool
	OnlyNV      bool
}

// Extract returns the driver options with the column layout resolved.
func (m ModeOptions) Extract() extract.Options {
	return extract.Options{
		UseGoldObj:  m.UseGoldObj,
		AddGoldHead: m.AddGoldHead,
		OnlyNV:      m.OnlyNV,
		Columns:     sent.ColumnsFor(m.OnlyGold),
	}
}

type ExtractOptions struct {
	ModeOptions
	Input    string
	Output   string
	Format   string
	Config   string
	Progress bool
	Verbose  bool
}

type InspectOptions struct {
	ModeOptions
	Input   string
	NoColor bool
	Verbose bool
}

type RunsOptions struct {
	DB      string
	Records string
}

// enumFlag implements flag.Value for restricted strings
type enumFlag struct {
	allowed []string
	value   *string
}

func (e *enumFlag) String() string {
	if e.value == nil {
		return ""
	}
	return *e.value
}

func (e *enumFlag) Set(value string) error {
	for _, a := range e.allowed {
		if a == value {
			*e.value = value
			return nil
		}
	}
	return fmt.Errorf("allowed values are %s", strings.Join(e.allowed, ", "))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func addModeFlags(fs *flag.FlagSet, m *ModeOptions) {
	fs.BoolVar(&m.UseGoldObj, "use_gold_obj", false, "Use gold trees to find preposition objects")
	fs.BoolVar(&m.AddGoldHead, "add_gold_head", false, "Add the gold head to the list of candidates")
	fs.BoolVar(&m.OnlyGold, "only_gold", false, "Data contain only gold trees, i.e., no data at columns PHEAD and PLABEL")
	fs.BoolVar(&m.OnlyNV, "only_nv", false, "Only count prepositions of which the true heads are nouns or verbs")
}

// parseFlags parses args and handles help and error output the same way
// for every command.
func parseFlags(fs *flag.FlagSet, args []string, ui UI) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return err
	}
	return nil
}

func parseMainArgs(args []string, ui UI) (string, []string, error) {
	fs := flag.NewFlagSet("ppcand", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	setupUsage(fs)

	if err := parseFlags(fs, args, ui); err != nil {
		return "", nil, err
	}

	if fs.NArg() == 0 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return "", nil, errors.New("no command provided")
	}

	return fs.Arg(0), fs.Args()[1:], nil
}

func parseExtractArgs(args []string, ui UI) (ExtractOptions, error) {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts ExtractOptions
	addModeFlags(fs, &opts.ModeOptions)
	opts.Format = envOr("PPCAND_FORMAT", render.DefaultFormat)
	fs.Var(&enumFlag{allowed: render.SupportedFormats(), value: &opts.Format}, "format",
		fmt.Sprintf("Output format (%s)", strings.Join(render.SupportedFormats(), ", ")))
	fs.StringVar(&opts.Config, "config", os.Getenv("PPCAND_CONFIG"), "YAML config file, flags take precedence")
	fs.BoolVar(&opts.Progress, "progress", false, "Show a progress bar on stderr")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Log debug diagnostics")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s extract [options] <input> <output>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Write the attachment candidates of every predicted preposition of <input>\n")
		_, _ = fmt.Fprintf(fs.Output(), "  to <output> and print the evaluation counters.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, err
	}

	if fs.NArg() != 2 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, errors.New("extract command needs exactly two arguments: <input> <output>")
	}
	opts.Input = fs.Arg(0)
	opts.Output = fs.Arg(1)

	if opts.Config != "" {
		cfg, err := config.Load(opts.Config)
		if err != nil {
			return opts, err
		}
		applyConfig(fs, cfg, &opts)
	}

	return opts, nil
}

// applyConfig copies the config values of the flags not given on the
// command line.
func applyConfig(fs *flag.FlagSet, cfg config.File, opts *ExtractOptions) {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	if !set["use_gold_obj"] {
		opts.UseGoldObj = cfg.UseGoldObj
	}
	if !set["add_gold_head"] {
		opts.AddGoldHead = cfg.AddGoldHead
	}
	if !set["only_gold"] {
		opts.OnlyGold = cfg.OnlyGold
	}
	if !set["only_nv"] {
		opts.OnlyNV = cfg.OnlyNV
	}
	if !set["format"] && cfg.Format != "" {
		opts.Format = cfg.Format
	}
	if !set["progress"] {
		opts.Progress = cfg.Progress
	}
	if !set["verbose"] {
		opts.Verbose = cfg.Verbose
	}
}

func parseInspectArgs(args []string, ui UI) (InspectOptions, error) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts InspectOptions
	addModeFlags(fs, &opts.ModeOptions)
	fs.BoolVar(&opts.NoColor, "no-color", false, "Do not color prepositions and gold heads")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Log debug diagnostics")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s inspect [options] <input>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Enter interactive mode to show the candidates of single sentences.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, err
	}

	if fs.NArg() != 1 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, errors.New("inspect command needs exactly one argument: <input>")
	}
	opts.Input = fs.Arg(0)
	return opts, nil
}

func parseRunsArgs(args []string, ui UI) (RunsOptions, error) {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts RunsOptions
	fs.StringVar(&opts.Records, "records", "", "Print the records of the run with this id")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s runs [options] <db>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  List the extraction runs stored in a SQLite file.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, err
	}

	if fs.NArg() != 1 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, errors.New("runs command needs exactly one argument: <db>")
	}
	opts.DB = fs.Arg(0)
	return opts, nil
}

func parseVersionArgs(args []string, ui UI) error {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s version\n", os.Args[0])
	}
	return parseFlags(fs, args, ui)
}

func setupUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: %s command [command options] [arguments...]\n", os.Args[0])
		_, _ = fmt.Fprintf(output, "\nDescription:\n")
		_, _ = fmt.Fprintf(output, "  PP attachment candidates from topological fields and dependency trees\n")
		_, _ = fmt.Fprintf(output, "\nCommands:\n")
		_, _ = fmt.Fprintf(output, "  extract   Write candidate records and print evaluation counters.\n")
		_, _ = fmt.Fprintf(output, "  inspect   Enter interactive mode over the sentences of a file.\n")
		_, _ = fmt.Fprintf(output, "  runs      List runs stored in a SQLite file.\n")
		_, _ = fmt.Fprintf(output, "  version   Show the version.\n")
		_, _ = fmt.Fprintf(output, "  help      Show help for a command.\n")
	}
}
