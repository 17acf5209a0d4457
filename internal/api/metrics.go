package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records every backend call made by the client.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grooviti",
			Subsystem: "api_client",
			Name:      "requests_total",
			Help:      "Backend requests by operation and outcome.",
		}, []string{"op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "grooviti",
			Subsystem: "api_client",
			Name:      "request_duration_seconds",
			Help:      "Backend request latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(op, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}
