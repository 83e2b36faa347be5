package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "mdbook_force_relative_links"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	runDuration     prom.Histogram
	runOutcome      *prom.CounterVec
	chapterDuration prom.Histogram
	chapterResults  *prom.CounterVec
	destinations    prom.Counter
	workers         prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a whole preprocessor run",
			Buckets:   prom.DefBuckets,
		}),
		runOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Preprocessor runs by final status",
		}, []string{"outcome"}),
		chapterDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "chapter_duration_seconds",
			Help:      "Time spent rewriting a single chapter",
			Buckets:   prom.ExponentialBuckets(0.0001, 4, 8),
		}),
		chapterResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "chapters_total",
			Help:      "Chapters visited by result",
		}, []string{"result"}),
		destinations: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "rewritten_destinations_total",
			Help:      "Link and image destinations made relative",
		}),
		workers: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "workers",
			Help:      "Worker pool size used for the last run",
		}),
	}
	reg.MustRegister(pr.runDuration, pr.runOutcome, pr.chapterDuration, pr.chapterResults, pr.destinations, pr.workers)
	return pr
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome RunOutcome) {
	if p == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveChapterDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.chapterDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncChapterResult(result ChapterResult) {
	if p == nil {
		return
	}
	p.chapterResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) AddRewrittenDestinations(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.destinations.Add(float64(n))
}

func (p *PrometheusRecorder) SetWorkers(n int) {
	if p == nil {
		return
	}
	p.workers.Set(float64(n))
}
