package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API
// and the front-desk admission counters.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	scanTotal       *prometheus.CounterVec
	checkInTotal    prometheus.Counter
	checkOutTotal   prometheus.Counter
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
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

	scanTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "frontdesk_scans_total",
		Help: "Student card scans by outcome",
	}, []string{"outcome"})

	checkInTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "frontdesk_visitor_checkins_total",
		Help: "Total visitor check-ins",
	})

	checkOutTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "frontdesk_visitor_checkouts_total",
		Help: "Total visitor check-outs",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, scanTotal, checkInTotal, checkOutTotal, cacheHits, cacheMisses, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		scanTotal:       scanTotal,
		checkInTotal:    checkInTotal,
		checkOutTotal:   checkOutTotal,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
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

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := []string{method, path, strconv.Itoa(status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(labels...).Inc()
}

// RecordScan counts a scan outcome (accepted, duplicate, rejected).
func (m *MetricsService) RecordScan(outcome string) {
	if m == nil {
		return
	}
	m.scanTotal.WithLabelValues(outcome).Inc()
}

// RecordCheckIn counts a successful visitor check-in.
func (m *MetricsService) RecordCheckIn() {
	if m == nil {
		return
	}
	m.checkInTotal.Inc()
}

// RecordCheckOut counts a successful visitor check-out.
func (m *MetricsService) RecordCheckOut() {
	if m == nil {
		return
	}
	m.checkOutTotal.Inc()
}

// RecordCacheOperation counts a cache lookup result.
func (m *MetricsService) RecordCacheOperation(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}
