package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Endpoint-level metrics for the analytics API, labelled by route name.
var (
	once sync.Once

	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dexpulse",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of analytics endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	APIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dexpulse",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Errors by analytics endpoint and kind",
		},
		[]string{"endpoint", "kind"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dexpulse",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Report cache lookups by result",
		},
		[]string{"result"},
	)

	StreamClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dexpulse",
			Subsystem: "api",
			Name:      "stream_clients",
			Help:      "Connected watch stream clients",
		},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(APILatency, APIErrors, CacheLookups, StreamClients)
	})
}
