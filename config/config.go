// Package config reads the optional YAML configuration of the extract
// command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bichngocdo/pp-attachment-candidate-extraction/render"
)

// File holds the settings a config file may provide. Command line flags
// take precedence.
type File struct {
	UseGoldObj  bool   `yaml:"use_gold_obj"`
	AddGoldHead bool   `yaml:"add_gold_head"`
	OnlyGold    bool   `yaml:"only_gold"`
	OnlyNV      bool   `yaml:"only_nv"`
	Format      string `yaml:"format"`
	Progress    bool   `yaml:"progress"`
	Verbose     bool   `yaml:"verbose"`
}

// Read decodes a config from r. Unknown keys are an error.
func Read(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if f.Format != "" && !slices.Contains(render.SupportedFormats(), f.Format) {
		return File{}, fmt.Errorf("unsupported format %q in config", f.Format)
	}
	return f, nil
}

// Load reads the config file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("error reading config file: %w", err)
	}
	return Read(bytes.NewReader(data))
}
