package preprocessor

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/book"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/config"
	ferrors "git.home.luguber.info/inful/mdbook-force-relative-links/internal/foundation/errors"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/linkrewrite"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/logfields"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/markdown"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/mdbook"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/metrics"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/relpath"
)

// Stats summarizes the last run.
type Stats struct {
	Chapters     int
	Rewritten    int
	Unchanged    int
	Skipped      int
	Destinations int
	Duration     time.Duration
}

// chapterRewriter rewrites one chapter's content for the given prefix.
type chapterRewriter interface {
	Rewrite(content, prefix string) (linkrewrite.Result, error)
}

// ForceRelativeLinks rewrites root-relative destinations chapter by chapter.
type ForceRelativeLinks struct {
	opts     config.Options
	rewriter chapterRewriter
	recorder metrics.Recorder
	logger   *slog.Logger

	mu    sync.Mutex
	stats Stats
}

var _ Preprocessor = (*ForceRelativeLinks)(nil)

// New creates the preprocessor. A non-positive worker count means one worker.
func New(opts config.Options) *ForceRelativeLinks {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &ForceRelativeLinks{
		opts: opts,
		rewriter: linkrewrite.New(linkrewrite.Options{
			Markdown:    markdown.Options{CommonMarkOnly: opts.CommonMarkOnly},
			Frontmatter: opts.Frontmatter,
		}),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// WithRecorder sets the metrics recorder.
func (p *ForceRelativeLinks) WithRecorder(r metrics.Recorder) *ForceRelativeLinks {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	p.recorder = r
	return p
}

// WithLogger sets the logger used for per-chapter diagnostics.
func (p *ForceRelativeLinks) WithLogger(l *slog.Logger) *ForceRelativeLinks {
	if l != nil {
		p.logger = l
	}
	return p
}

func (p *ForceRelativeLinks) Name() string { return Name }

// SupportsRenderer reports true for every renderer unless the renderers option
// restricts the set.
func (p *ForceRelativeLinks) SupportsRenderer(renderer string) bool {
	if len(p.opts.Renderers) == 0 {
		return true
	}
	return slices.Contains(p.opts.Renderers, renderer)
}

// Stats returns the statistics of the most recent Run.
func (p *ForceRelativeLinks) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// chapterJob is one chapter's rewrite, computed before any chapter is modified.
type chapterJob struct {
	chapter *book.Chapter
	path    string
	result  linkrewrite.Result
}

// Run rewrites every chapter that has a path. Chapters are rewritten concurrently;
// the first failure cancels the remaining work and leaves the book untouched.
func (p *ForceRelativeLinks) Run(ctx context.Context, mctx *mdbook.Context, b *book.Book) error {
	start := time.Now()
	p.recorder.SetWorkers(p.opts.Workers)

	var renderer string
	if mctx != nil {
		renderer = mctx.Renderer
	}
	log := p.logger.With(logfields.Preprocessor(Name), logfields.Renderer(renderer))

	stats := Stats{}
	jobs := make([]*chapterJob, 0, len(b.Chapters()))
	for _, ch := range b.Chapters() {
		stats.Chapters++
		path, ok := ch.Path()
		if !ok {
			stats.Skipped++
			p.recorder.IncChapterResult(metrics.ChapterSkipped)
			log.Debug("Skipping chapter without path", logfields.ChapterName(ch.Name()))
			continue
		}
		jobs = append(jobs, &chapterJob{chapter: ch, path: path})
	}

	if err := p.rewriteAll(ctx, log, jobs); err != nil {
		stats.Duration = time.Since(start)
		p.finish(stats, err)
		return err
	}

	for _, job := range jobs {
		if !job.result.Changed() {
			stats.Unchanged++
			p.recorder.IncChapterResult(metrics.ChapterUnchanged)
			continue
		}
		job.chapter.SetContent(job.result.Content)
		stats.Rewritten++
		stats.Destinations += job.result.Rewritten
		p.recorder.IncChapterResult(metrics.ChapterRewritten)
		p.recorder.AddRewrittenDestinations(job.result.Rewritten)
	}

	stats.Duration = time.Since(start)
	p.finish(stats, nil)
	log.Debug("Rewrote book",
		logfields.Chapters(stats.Chapters),
		logfields.Rewritten(stats.Destinations),
		logfields.Workers(p.opts.Workers),
		logfields.Duration(stats.Duration))
	return nil
}

// rewriteAll fills in each job's result using a bounded worker pool.
func (p *ForceRelativeLinks) rewriteAll(ctx context.Context, log *slog.Logger, jobs []*chapterJob) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	sem := make(chan struct{}, p.opts.Workers)
	for _, job := range jobs {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(job *chapterJob) {
			defer wg.Done()
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}
			if err := p.rewriteChapter(log, job); err != nil {
				fail(err)
			}
		}(job)
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	if err := ctx.Err(); err != nil {
		return ferrors.RuntimeError("preprocessing canceled").WithCause(err).Build()
	}
	return nil
}

func (p *ForceRelativeLinks) rewriteChapter(log *slog.Logger, job *chapterJob) error {
	started := time.Now()
	prefix := relpath.Prefix(job.path)

	res, err := p.rewriter.Rewrite(job.chapter.Content(), prefix)
	p.recorder.ObserveChapterDuration(time.Since(started))
	if err != nil {
		log.Error("Failed to rewrite chapter", logfields.Chapter(job.path), logfields.Error(err))
		if classified, ok := ferrors.AsClassified(err); ok {
			return classified.WithContext("chapter", job.path)
		}
		return ferrors.InternalError("failed to rewrite chapter").
			WithCause(err).
			WithContext("chapter", job.path).
			Build()
	}

	job.result = res
	if res.Changed() {
		log.Debug("Rewrote chapter links",
			logfields.Chapter(job.path),
			logfields.Prefix(prefix),
			logfields.Rewritten(res.Rewritten))
	}
	return nil
}

func (p *ForceRelativeLinks) finish(stats Stats, err error) {
	p.mu.Lock()
	p.stats = stats
	p.mu.Unlock()

	p.recorder.ObserveRunDuration(stats.Duration)
	switch {
	case err == nil:
		p.recorder.IncRunOutcome(metrics.RunSuccess)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		p.recorder.IncRunOutcome(metrics.RunCanceled)
	default:
		p.recorder.IncRunOutcome(metrics.RunFailed)
	}
}
