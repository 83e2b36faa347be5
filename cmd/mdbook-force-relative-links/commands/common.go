package commands

import (
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
)

// BinaryName is the executable mdbook starts for [preprocessor.force-relative-links].
const BinaryName = "mdbook-force-relative-links"

// Global carries the process streams and state shared by all commands.
type Global struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	exitCode int
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"YAML options file" type:"path"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`
	MetricsFile string           `name:"metrics-file" help:"Write run metrics in the Prometheus text format to this file" type:"path"`

	Run      RunCmd      `cmd:"" default:"1" help:"Read [context, book] from stdin and write the processed book to stdout"`
	Supports SupportsCmd `cmd:"" help:"Check whether a renderer is supported by this preprocessor"`
}

// AfterApply runs after flag parsing; setup logging once. stdout carries the book, so
// logs always go to stderr.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = slog.New(slog.NewTextHandler(g.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.Logger)
	return nil
}
