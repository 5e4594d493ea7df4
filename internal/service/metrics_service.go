package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation run outcomes recorded against metrics.
const (
	RunOutcomeSuccess    = "success"
	RunOutcomeInfeasible = "infeasible"
	RunOutcomeAborted    = "aborted"
	RunOutcomeRejected   = "rejected"
)

// MetricsService owns the Prometheus registry and the collectors for
// HTTP traffic and generation runs.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	runDuration *prometheus.HistogramVec
	runTotal    *prometheus.CounterVec
	runNodes    prometheus.Histogram
	savedTotal  prometheus.Counter
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	runDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "generation_run_duration_seconds",
		Help:    "Wall-clock duration of timetable generation runs",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"outcome"})

	runTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "generation_runs_total",
		Help: "Total generation runs by outcome",
	}, []string{"outcome"})

	runNodes := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "generation_run_nodes",
		Help:    "Placement attempts explored per generation run",
		Buckets: prometheus.ExponentialBuckets(100, 10, 6),
	})

	savedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetables_saved_total",
		Help: "Total timetable versions persisted from proposals",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, runDuration, runTotal, runNodes, savedTotal, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		runDuration:     runDuration,
		runTotal:        runTotal,
		runNodes:        runNodes,
		savedTotal:      savedTotal,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveGenerationRun records one engine run.
func (m *MetricsService) ObserveGenerationRun(outcome string, nodes int64, duration time.Duration) {
	if m == nil {
		return
	}
	m.runTotal.WithLabelValues(outcome).Inc()
	m.runDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	m.runNodes.Observe(float64(nodes))
}

// RecordTimetablesSaved counts persisted timetable versions.
func (m *MetricsService) RecordTimetablesSaved(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.savedTotal.Add(float64(count))
}
