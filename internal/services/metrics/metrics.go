// Package metrics exposes Prometheus instrumentation for the frontend.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector counts backend calls and reports cache occupancy. It satisfies
// both prometheus.Collector and backend.Observer.
type Collector struct {
	backendCalls    *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	cachedSessions  *prometheus.Desc
	sessionsFn      func() int
}

// New creates a collector. sessionsFn reports how many sessions currently
// hold cached lists; it may be nil.
func New(namespace string, sessionsFn func() int) *Collector {
	return &Collector{
		backendCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "backend",
				Name:      "requests_total",
				Help:      "Requests made to the receipt backend",
			},
			[]string{"method", "endpoint", "code"},
		),
		backendDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "backend",
				Name:      "request_duration_seconds",
				Help:      "Latency of requests to the receipt backend",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		cachedSessions: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "viewcache", "sessions"),
			"Sessions holding cached receipt or user lists",
			nil,
			nil,
		),
		sessionsFn: sessionsFn,
	}
}

// ObserveBackendCall records one backend request. status 0 means the request
// never got a response.
func (c *Collector) ObserveBackendCall(method, endpoint string, status int, elapsed time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	c.backendCalls.WithLabelValues(method, endpoint, code).Inc()
	c.backendDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.backendCalls.Describe(ch)
	c.backendDuration.Describe(ch)
	ch <- c.cachedSessions
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.backendCalls.Collect(ch)
	c.backendDuration.Collect(ch)

	n := 0
	if c.sessionsFn != nil {
		n = c.sessionsFn()
	}
	ch <- prometheus.MustNewConstMetric(c.cachedSessions, prometheus.GaugeValue, float64(n))
}
