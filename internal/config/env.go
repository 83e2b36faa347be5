package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	ferrors "git.home.luguber.info/inful/mdbook-force-relative-links/internal/foundation/errors"
)

// EnvPrefix prefixes every environment variable the preprocessor reads.
const EnvPrefix = "MDBOOK_FORCE_RELATIVE_LINKS_"

// Environment variable names.
const (
	EnvRenderers      = EnvPrefix + "RENDERERS"
	EnvWorkers        = EnvPrefix + "WORKERS"
	EnvFrontmatter    = EnvPrefix + "FRONTMATTER"
	EnvCommonMarkOnly = EnvPrefix + "COMMONMARK_ONLY"
	EnvMetricsFile    = EnvPrefix + "METRICS_FILE"
)

// dotEnvFiles are read from the book root in order; earlier files win.
var dotEnvFiles = []string{".env.local", ".env"}

// readDotEnv loads KEY=VALUE pairs from the .env files in root that exist.
func readDotEnv(root string) (map[string]string, error) {
	vars := map[string]string{}
	if root == "" {
		return vars, nil
	}
	for _, name := range dotEnvFiles {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		fileVars, err := godotenv.Read(path)
		if err != nil {
			return nil, ferrors.ConfigError("failed to read env file").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
		for k, v := range fileVars {
			if _, ok := vars[k]; !ok {
				vars[k] = v
			}
		}
	}
	return vars, nil
}

// withFallback consults lookup first so .env files never override the real environment.
func withFallback(lookup func(string) (string, bool), fallback map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := fallback[key]
		return v, ok
	}
}

func applyEnv(opts *Options, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvRenderers); ok {
		opts.Renderers = splitList(v)
	}
	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return envError(EnvWorkers, v, err)
		}
		opts.Workers = n
	}
	if v, ok := lookup(EnvFrontmatter); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return envError(EnvFrontmatter, v, err)
		}
		opts.Frontmatter = b
	}
	if v, ok := lookup(EnvCommonMarkOnly); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return envError(EnvCommonMarkOnly, v, err)
		}
		opts.CommonMarkOnly = b
	}
	if v, ok := lookup(EnvMetricsFile); ok {
		opts.MetricsFile = strings.TrimSpace(v)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envError(key, value string, err error) error {
	return ferrors.ConfigError("invalid environment variable").
		WithCause(err).
		WithContext("variable", key).
		WithContext("value", value).
		Build()
}
