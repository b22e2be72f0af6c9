package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"journal-go/internal/journal"
	"journal-go/internal/model"
)

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	EntriesWritten   *prometheus.CounterVec
	AnalysisFailures prometheus.Counter
	AnalysisDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "journal",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "journal",
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		EntriesWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "journal",
				Name:      "entries_written_total",
				Help:      "Entries written, by whether they were created or updated",
			},
			[]string{"result"},
		),
		AnalysisFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "journal",
				Name:      "analysis_failures_total",
				Help:      "Total number of failed entry analyses",
			},
		),
		AnalysisDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "journal",
				Name:      "analysis_duration_seconds",
				Help:      "Duration of entry analysis calls in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests and for adding process collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// RecordRequest records one handled request.
func (m *Metrics) RecordRequest(method, route string, status int, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordWrite counts a stored entry.
func (m *Metrics) RecordWrite(created bool) {
	result := "updated"
	if created {
		result = "created"
	}
	m.EntriesWritten.WithLabelValues(result).Inc()
}

// InstrumentAnalyzer wraps a so every call is timed and failures are counted.
func (m *Metrics) InstrumentAnalyzer(a journal.Analyzer) journal.Analyzer {
	return &instrumentedAnalyzer{next: a, m: m}
}

type instrumentedAnalyzer struct {
	next journal.Analyzer
	m    *Metrics
}

func (i *instrumentedAnalyzer) Analyze(ctx context.Context, content string) (model.Analysis, error) {
	start := time.Now()
	a, err := i.next.Analyze(ctx, content)
	i.m.AnalysisDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		i.m.AnalysisFailures.Inc()
	}
	return a, err
}
