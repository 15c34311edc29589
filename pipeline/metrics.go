package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline's Prometheus instruments. A nil *Metrics is
// valid and records nothing, so metrics stay optional.
type Metrics struct {
	runs        *prometheus.CounterVec
	rows        prometheus.Counter
	fallbacks   prometheus.Counter
	duration    prometheus.Histogram
	watchEvents prometheus.Counter
}

// NewMetrics registers the pipeline instruments with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cropsense",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Correction runs by outcome.",
		}, []string{"status"}),
		rows: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "cropsense",
			Subsystem: "pipeline",
			Name:      "rows_corrected_total",
			Help:      "Dataset rows rewritten with synthesized features.",
		}),
		fallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "cropsense",
			Subsystem: "pipeline",
			Name:      "fallback_rows_total",
			Help:      "Rows whose crop fell back to the default profile.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cropsense",
			Subsystem: "pipeline",
			Name:      "run_duration_seconds",
			Help:      "Wall time of correction runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		watchEvents: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "cropsense",
			Subsystem: "pipeline",
			Name:      "watch_events_total",
			Help:      "Dataset changes picked up by the watcher.",
		}),
	}
}

// RecordRun accounts for one finished run.
func (m *Metrics) RecordRun(status string, rows, fallbacks int, d time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(status).Inc()
	m.rows.Add(float64(rows))
	m.fallbacks.Add(float64(fallbacks))
	m.duration.Observe(d.Seconds())
}

// RecordWatchEvent counts one watcher-triggered correction.
func (m *Metrics) RecordWatchEvent() {
	if m == nil {
		return
	}
	m.watchEvents.Inc()
}
