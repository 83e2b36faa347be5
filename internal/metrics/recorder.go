package metrics

import "time"

// ChapterResult enumerates what happened to a single chapter.
type ChapterResult string

const (
	ChapterRewritten ChapterResult = "rewritten"
	ChapterUnchanged ChapterResult = "unchanged"
	ChapterSkipped   ChapterResult = "skipped"
)

// RunOutcome enumerates the final status of a preprocessor run.
type RunOutcome string

const (
	RunSuccess  RunOutcome = "success"
	RunFailed   RunOutcome = "failed"
	RunCanceled RunOutcome = "canceled"
)

// Recorder defines observability hooks for a preprocessor run. Implementations must be
// safe for concurrent use; chapters are processed by a worker pool.
type Recorder interface {
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome RunOutcome)
	ObserveChapterDuration(d time.Duration)
	IncChapterResult(result ChapterResult)
	AddRewrittenDestinations(n int)
	SetWorkers(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRunDuration(time.Duration)     {}
func (NoopRecorder) IncRunOutcome(RunOutcome)             {}
func (NoopRecorder) ObserveChapterDuration(time.Duration) {}
func (NoopRecorder) IncChapterResult(ChapterResult)       {}
func (NoopRecorder) AddRewrittenDestinations(int)         {}
func (NoopRecorder) SetWorkers(int)                       {}
