package commands

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/config"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/logfields"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/mdbook"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/metrics"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/preprocessor"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/version"
)

// RunCmd implements the default command: one preprocessor run driven by mdbook.
type RunCmd struct {
	Workers int `short:"w" help:"Number of chapters rewritten concurrently (overrides configuration)"`
}

func (r *RunCmd) Run(g *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	logger := g.Logger.With(logfields.RunID(uuid.NewString()), logfields.Preprocessor(preprocessor.Name))

	mctx, book, err := mdbook.ParseInput(g.Stdin)
	if err != nil {
		return err
	}
	logger = logger.With(logfields.Renderer(mctx.Renderer))

	if ok, verr := mdbook.CheckVersion(mctx.MDBookVersion); !ok {
		logger.Warn("The preprocessor was built against a different version of mdbook",
			logfields.MDBookVersion(mctx.MDBookVersion),
			logfields.Requirement("^"+version.MDBookVersion),
			logfields.Error(verr))
	}

	opts, err := config.Load(config.Sources{
		File:     root.Config,
		Table:    mctx.PreprocessorConfig(preprocessor.Name),
		BookRoot: mctx.Root,
	})
	if err != nil {
		return err
	}
	if r.Workers > 0 {
		opts.Workers = r.Workers
	}
	if root.MetricsFile != "" {
		opts.MetricsFile = root.MetricsFile
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var registry *prometheus.Registry
	if opts.MetricsFile != "" {
		registry = prometheus.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	p := preprocessor.New(*opts).WithLogger(logger).WithRecorder(recorder)
	runErr := p.Run(ctx, mctx, book)

	if registry != nil {
		if err := metrics.WriteTextfile(registry, opts.MetricsFile); err != nil {
			logger.Warn("Failed to write metrics", logfields.Path(opts.MetricsFile), logfields.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	out := bufio.NewWriter(g.Stdout)
	if err := mdbook.WriteOutput(out, book); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return err
	}

	stats := p.Stats()
	logger.Debug("Preprocessing complete",
		logfields.Chapters(stats.Chapters),
		logfields.Rewritten(stats.Destinations),
		logfields.Duration(time.Since(start)))
	return nil
}
