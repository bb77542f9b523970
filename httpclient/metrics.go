package httpclient

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const codeTransportError = "error"

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{ //nolint:exhaustruct
		Namespace: "gtracker",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Requests sent to the Tracker API by method and status code.",
	}, []string{"method", "code"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{ //nolint:exhaustruct
		Namespace: "gtracker",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency of requests sent to the Tracker API.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	return &metrics{
		requests: register(registerer, requests),
		duration: register(registerer, duration),
	}
}

// register reuses a collector already registered by another client.
func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	if err := registerer.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
		}
	}

	return collector
}

func (m *metrics) observe(method, code string, latency time.Duration) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(method, code).Inc()
	m.duration.WithLabelValues(method).Observe(latency.Seconds())
}
