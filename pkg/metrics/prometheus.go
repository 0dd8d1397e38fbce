package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	cycles     *prometheus.CounterVec
	errorsTot  *prometheus.CounterVec
	confidence *prometheus.GaugeVec
	latency    *prometheus.HistogramVec
}

// New registers the refresh metrics on reg, or on the default registry when
// reg is nil.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Recorder{
		cycles: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dexpulse_refresh_cycles_total",
				Help: "Refresh cycles by outcome (ok, error, stale, no_pairs)",
			},
			[]string{"result"},
		),
		errorsTot: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dexpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		confidence: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dexpulse_signal_confidence",
				Help: "Confidence of the latest signal per watched token",
			},
			[]string{"token"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dexpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordCycle counts one refresh cycle by outcome.
func (r *Recorder) RecordCycle(result string) {
	r.cycles.WithLabelValues(result).Inc()
}

func (r *Recorder) RecordError(kind string) {
	r.errorsTot.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordConfidence(token string, confidence int) {
	r.confidence.WithLabelValues(token).Set(float64(confidence))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
