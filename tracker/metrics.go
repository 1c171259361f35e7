package tracker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Comparison outcomes used as the "result" label.
const (
	resultOK    = "ok"
	resultLimit = "limit"
	resultError = "error"
)

// Metrics holds the tracker's Prometheus collectors.
type Metrics struct {
	Comparisons *prometheus.CounterVec
	Duration    prometheus.Histogram
	Spreads     prometheus.Counter
}

// NewMetrics registers the tracker collectors with reg. A nil reg creates
// unregistered collectors, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Comparisons: f.NewCounterVec(prometheus.CounterOpts{
			Name: "seqtrace_comparisons_total",
			Help: "Genome comparisons by outcome",
		}, []string{"result"}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "seqtrace_comparison_duration_seconds",
			Help:    "Wall time of one genome comparison",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		Spreads: f.NewCounter(prometheus.CounterOpts{
			Name: "seqtrace_spreads_total",
			Help: "Spreads inferred by trace runs",
		}),
	}
}
