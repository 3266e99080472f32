// Package metrics collects prometheus metrics for team operations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Recorder is implemented by metric sinks used from the usecase layer.
type Recorder interface {
	ObserveOperation(op string, err error, took time.Duration)
	ObserveSearchResults(n int)
}

// Collector records operation outcomes into prometheus.
type Collector struct {
	operations  *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	searchCount prometheus.Histogram
}

// NewCollector creates a Collector and registers it on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "team_formation",
			Name:      "operations_total",
			Help:      "Team formation operations by outcome.",
		}, []string{"op", "result"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "team_formation",
			Name:      "operation_duration_seconds",
			Help:      "Team formation operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		searchCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "team_formation",
			Name:      "search_results",
			Help:      "Number of users returned by teammate search.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		}),
	}

	reg.MustRegister(c.operations, c.latency, c.searchCount)
	return c
}

// ObserveOperation counts op by result and records its latency.
func (c *Collector) ObserveOperation(op string, err error, took time.Duration) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	c.operations.WithLabelValues(op, result).Inc()
	c.latency.WithLabelValues(op).Observe(took.Seconds())
}

// ObserveSearchResults records the size of a search response.
func (c *Collector) ObserveSearchResults(n int) {
	c.searchCount.Observe(float64(n))
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

func (Nop) ObserveOperation(string, error, time.Duration) {}
func (Nop) ObserveSearchResults(int)                      {}
