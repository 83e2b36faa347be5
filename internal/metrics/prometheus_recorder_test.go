package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/mdbook-force-relative-links/internal/foundation/errors"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveRunDuration(500 * time.Millisecond)
	pr.IncRunOutcome(RunSuccess)
	pr.ObserveChapterDuration(2 * time.Millisecond)
	pr.IncChapterResult(ChapterRewritten)
	pr.IncChapterResult(ChapterRewritten)
	pr.IncChapterResult(ChapterSkipped)
	pr.AddRewrittenDestinations(5)
	pr.AddRewrittenDestinations(0)
	pr.SetWorkers(4)

	text := scrape(t, reg)
	require.Contains(t, text, `mdbook_force_relative_links_chapters_total{result="rewritten"} 2`)
	require.Contains(t, text, `mdbook_force_relative_links_chapters_total{result="skipped"} 1`)
	require.Contains(t, text, "mdbook_force_relative_links_rewritten_destinations_total 5")
	require.Contains(t, text, "mdbook_force_relative_links_workers 4")
	require.Contains(t, text, `mdbook_force_relative_links_run_outcomes_total{outcome="success"} 1`)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)
}

func TestPrometheusRecorder_NilReceiver(t *testing.T) {
	var pr *PrometheusRecorder
	require.NotPanics(t, func() {
		pr.ObserveRunDuration(time.Second)
		pr.IncRunOutcome(RunFailed)
		pr.IncChapterResult(ChapterUnchanged)
		pr.AddRewrittenDestinations(1)
		pr.SetWorkers(1)
	})
}

func TestPrometheusRecorder_ConcurrentUse(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				pr.IncChapterResult(ChapterUnchanged)
				pr.AddRewrittenDestinations(1)
			}
		}()
	}
	wg.Wait()
	text := scrape(t, reg)
	require.Contains(t, text, "mdbook_force_relative_links_rewritten_destinations_total 800")
	require.Contains(t, text, `mdbook_force_relative_links_chapters_total{result="unchanged"} 800`)
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncRunOutcome(RunSuccess)
	pr.AddRewrittenDestinations(3)

	text := scrape(t, reg)
	require.True(t, strings.Contains(text, "mdbook_force_relative_links_rewritten_destinations_total 3"), text)
	require.Contains(t, text, `mdbook_force_relative_links_run_outcomes_total{outcome="success"} 1`)
}

func TestWriteTextfile_BadPath(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg)
	err := WriteTextfile(reg, filepath.Join(t.TempDir(), "missing", "dir", "run.prom"))
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
	require.True(t, ferrors.HasSeverity(err, ferrors.SeverityError))
}

func TestTestRecorder(t *testing.T) {
	rec := newTestRecorder()
	rec.IncChapterResult(ChapterSkipped)
	rec.AddRewrittenDestinations(2)
	rec.IncRunOutcome(RunCanceled)
	require.Equal(t, 1, rec.chapters[ChapterSkipped])
	require.Equal(t, 2, rec.destinations)
	require.Equal(t, 1, rec.runs[RunCanceled])
}

// scrape writes reg to a temporary textfile and returns its contents.
func scrape(t *testing.T, reg *prom.Registry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.prom")
	require.NoError(t, WriteTextfile(reg, path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(raw)
}
