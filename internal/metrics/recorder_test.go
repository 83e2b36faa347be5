package metrics

import (
	"sync"
	"time"
)

var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)
var _ Recorder = (*testRecorder)(nil)

type testRecorder struct {
	mu           sync.Mutex
	runs         map[RunOutcome]int
	chapters     map[ChapterResult]int
	destinations int
	workers      int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{runs: map[RunOutcome]int{}, chapters: map[ChapterResult]int{}}
}

func (t *testRecorder) ObserveRunDuration(time.Duration) {}
func (t *testRecorder) IncRunOutcome(outcome RunOutcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.runs[outcome]++
}
func (t *testRecorder) ObserveChapterDuration(time.Duration) {}
func (t *testRecorder) IncChapterResult(result ChapterResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.chapters[result]++
}
func (t *testRecorder) AddRewrittenDestinations(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.destinations += n
}
func (t *testRecorder) SetWorkers(n int) { t.workers = n }
