// Package prometheus exposes search and HTTP metrics using the Prometheus
// client library.
package prometheus

import (
	"context"
	"net/http"
	"time"

	"github.com/DennisFaucher/aisalesplan"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	searches       *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them, along with the Go
// runtime and process collectors, on a new registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		searches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aisalesplan_searches_total",
				Help: "Total number of backend searches by backend and error code",
			},
			[]string{"backend", "code"},
		),
		searchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aisalesplan_search_duration_seconds",
				Help:    "Duration of backend searches in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
			[]string{"backend"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aisalesplan_http_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aisalesplan_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Ensure InstrumentedSearcher implements aisalesplan.Searcher.
var _ aisalesplan.Searcher = (*InstrumentedSearcher)(nil)

// InstrumentedSearcher wraps a Searcher, counting searches by outcome and
// recording their latency.
type InstrumentedSearcher struct {
	next    aisalesplan.Searcher
	backend string
	metrics *Metrics
}

// NewInstrumentedSearcher creates a new InstrumentedSearcher.
func NewInstrumentedSearcher(next aisalesplan.Searcher, backend string, m *Metrics) *InstrumentedSearcher {
	return &InstrumentedSearcher{next: next, backend: backend, metrics: m}
}

// Search delegates to the wrapped searcher. Successful searches are
// counted with code "ok".
func (s *InstrumentedSearcher) Search(ctx context.Context, query string) (*aisalesplan.SearchResult, error) {
	begin := time.Now()
	res, err := s.next.Search(ctx, query)

	code := "ok"
	if err != nil {
		code = aisalesplan.ErrorCode(err)
	}
	s.metrics.searches.WithLabelValues(s.backend, code).Inc()
	s.metrics.searchDuration.WithLabelValues(s.backend).Observe(time.Since(begin).Seconds())

	return res, err
}
