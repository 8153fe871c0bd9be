// Package config loads run options from a YAML file.
//
// Files are validated against an embedded CUE schema before decoding,
// so typos in key names and wrongly typed values are reported with the
// offending path instead of being silently ignored. Command-line flags
// that were set explicitly take precedence over file values; the merge
// happens in the CLI layer.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// Color modes for report output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config mirrors the run options settable from a file.
type Config struct {
	Filter          string `yaml:"filter"`
	Repeat          int    `yaml:"repeat"`
	Shuffle         bool   `yaml:"shuffle"`
	RandomSeed      int64  `yaml:"random_seed"`
	PrintTime       bool   `yaml:"print_time"`
	AlsoRunDisabled bool   `yaml:"also_run_disabled"`
	BreakOnFailure  bool   `yaml:"break_on_failure"`
	Logfile         string `yaml:"logfile"`
	Color           string `yaml:"color"`
	Verbose         bool   `yaml:"verbose"`
}

// Default returns the built-in option values: run every selected case
// once, report per-case timing, detect color support from the terminal.
func Default() Config {
	return Config{
		Repeat:    1,
		PrintTime: true,
		Color:     ColorAuto,
	}
}

// Load reads and validates the file at path, returning the defaults
// overlaid with the file's values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates and decodes one YAML document.
func Parse(data []byte) (Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parsing yaml: %w", err)
	}
	if raw == nil {
		return Default(), nil
	}
	if err := validate(raw); err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding yaml: %w", err)
	}
	return cfg, nil
}

// validate unifies the raw document with the #Config definition.
// The definition is closed, so unknown keys fail here.
func validate(raw map[string]any) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return fmt.Errorf("config schema has no #Config definition")
	}

	doc := ctx.Encode(raw)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("encoding config document: %w", err)
	}
	unified := def.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %s", cueerrors.Details(err, nil))
	}
	return nil
}
