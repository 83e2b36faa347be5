// Package config resolves the preprocessor's options from layered sources.
//
// Later layers override earlier ones:
//
//  1. built-in defaults
//  2. an optional YAML options file
//  3. the [preprocessor.force-relative-links] table of book.toml
//  4. MDBOOK_FORCE_RELATIVE_LINKS_* environment variables, with .env files in the
//     book root filling in variables the process environment does not set
//
// Command line flags are applied on top by the CLI.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/mdbook-force-relative-links/internal/foundation/errors"
)

// Options controls a preprocessor run.
type Options struct {
	// Renderers restricts the renderers the preprocessor reports support for.
	// Empty means every renderer.
	Renderers []string `yaml:"renderers"`
	// Workers is the number of chapters rewritten concurrently.
	Workers int `yaml:"workers"`
	// Frontmatter leaves a leading YAML frontmatter block of each chapter untouched.
	Frontmatter bool `yaml:"frontmatter"`
	// CommonMarkOnly parses chapters without mdbook's Markdown extensions.
	CommonMarkOnly bool `yaml:"commonmark-only"`
	// MetricsFile, when set, receives run metrics in the Prometheus text format.
	MetricsFile string `yaml:"metrics-file"`
}

// Defaults returns the built-in options.
func Defaults() Options {
	return Options{
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Sources names the inputs Load reads from. Zero values skip a layer.
type Sources struct {
	// File is a YAML options file.
	File string
	// Table is the preprocessor's table from book.toml.
	Table map[string]any
	// BookRoot is searched for .env files.
	BookRoot string
	// LookupEnv reads the process environment; os.LookupEnv when nil.
	LookupEnv func(string) (string, bool)
}

// Load resolves options from src and validates the result.
func Load(src Sources) (*Options, error) {
	opts := Defaults()

	if src.File != "" {
		if err := applyFile(&opts, src.File); err != nil {
			return nil, err
		}
	}

	if len(src.Table) > 0 {
		if err := applyTable(&opts, src.Table); err != nil {
			return nil, err
		}
	}

	lookup := src.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	dotenv, err := readDotEnv(src.BookRoot)
	if err != nil {
		return nil, err
	}
	if err := applyEnv(&opts, withFallback(lookup, dotenv)); err != nil {
		return nil, err
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

func applyFile(opts *Options, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return ferrors.ConfigError("failed to read options file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), opts); err != nil {
		return ferrors.ConfigError("failed to parse options file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}

// applyTable overlays a book.toml table. Keys the preprocessor does not own, such as
// mdbook's own "command", "before" and "after", are ignored.
func applyTable(opts *Options, table map[string]any) error {
	raw, err := yaml.Marshal(table)
	if err != nil {
		return ferrors.ConfigError("failed to read book.toml preprocessor table").WithCause(err).Build()
	}
	if err := yaml.Unmarshal(raw, opts); err != nil {
		return ferrors.ConfigError("invalid book.toml preprocessor table").
			WithCause(err).
			WithContext("table", fmt.Sprint(table)).
			Build()
	}
	return nil
}
