// Package metrics exposes Prometheus metrics for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the service records to. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	stageDuration   *prometheus.HistogramVec
	pipelineFailure *prometheus.CounterVec
	researchResults *prometheus.CounterVec
	researchCache   *prometheus.CounterVec

	collectors []prometheus.Collector
}

// New creates the collectors and registers them on registry. A nil
// registry gets a fresh one with the Go and process collectors.
func New(registry *prometheus.Registry) (*Metrics, error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	m := &Metrics{registry: registry}
	m.init()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) init() {
	m.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "camorent_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)
	m.httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "camorent_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	m.stageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "camorent_pipeline_stage_duration_seconds",
			Help:    "Time spent in each pipeline stage",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
		[]string{"stage"},
	)
	m.pipelineFailure = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "camorent_pipeline_failures_total",
			Help: "Pipeline requests aborted by stage",
		},
		[]string{"stage"},
	)
	m.researchResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "camorent_research_results_total",
			Help: "Research results by producing strategy",
		},
		[]string{"source"},
	)
	m.researchCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "camorent_research_cache_total",
			Help: "Research cache lookups by result",
		},
		[]string{"result"},
	)

	m.collectors = []prometheus.Collector{
		m.httpRequests, m.httpDuration, m.stageDuration,
		m.pipelineFailure, m.researchResults, m.researchCache,
	}
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors {
		c.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors {
		c.Collect(ch)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

// ObserveStage records how long a pipeline stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// StageFailed counts a request aborted at stage.
func (m *Metrics) StageFailed(stage string) {
	if m == nil {
		return
	}
	m.pipelineFailure.WithLabelValues(stage).Inc()
}

// ResearchResult counts a research result produced by source.
func (m *Metrics) ResearchResult(source string) {
	if m == nil {
		return
	}
	m.researchResults.WithLabelValues(source).Inc()
}

// CacheLookup counts a research cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.researchCache.WithLabelValues(result).Inc()
}
