// Package metrics provides Prometheus metrics for the broodsheet infographic service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the broodsheet service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core Business Metrics - What really matters for an infographic service
	rendersTotal   *prometheus.CounterVec
	renderErrors   prometheus.Counter
	renderDuration prometheus.Histogram

	// Response Cache Metrics
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
	cacheStores  prometheus.Counter
	cacheEntries prometheus.Gauge

	// Sprite Store Metrics
	spriteFetches      prometheus.Counter
	spriteFetchErrors  prometheus.Counter
	spriteFetchLatency prometheus.Histogram

	// Background Task Metrics
	taskQueueDepth prometheus.Gauge
	taskDropped    prometheus.Counter
	taskErrors     prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Lookup Table Metrics
	speciesLoaded prometheus.Gauge
	colorsLoaded  prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "broodsheet",
		subsystem:        "infographic",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.rendersTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "renders_total",
			Help:      "Total number of rendered infographics by output format",
		},
		[]string{"format"},
	)

	m.renderErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "render_errors_total",
		Help:      "Total number of render dispatch failures",
	})

	m.renderDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "render_duration_milliseconds",
		Help:      "Histogram of end-to-end render latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Total number of response cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Total number of response cache misses",
	})

	m.cacheStores = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_stores_total",
		Help:      "Total number of responses written to the cache",
	})

	m.cacheEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_entries",
		Help:      "Current number of live entries in the response cache",
	})

	m.spriteFetches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sprite_fetches_total",
		Help:      "Total number of sprite object-store fetches",
	})

	m.spriteFetchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sprite_fetch_errors_total",
		Help:      "Total number of failed sprite fetches (requests degrade, never fail)",
	})

	m.spriteFetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sprite_fetch_latency_milliseconds",
		Help:      "Sprite fetch latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.taskQueueDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "task_queue_depth",
		Help:      "Current depth of the background task queue",
	})

	m.taskDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tasks_dropped_total",
		Help:      "Total number of background tasks dropped due to backpressure",
	})

	m.taskErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "task_errors_total",
		Help:      "Total number of background task failures (swallowed and logged)",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.speciesLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "species_loaded",
		Help:      "Number of species in the loaded metadata table",
	})

	m.colorsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "colors_loaded",
		Help:      "Number of entries in the loaded color table",
	})
}

// Package-level helpers operating on the global manager.

// RecordRender increments the render counter for an output format.
func RecordRender(format string) {
	globalManager.rendersTotal.WithLabelValues(format).Inc()
}

// RecordRenderError increments the render failure counter.
func RecordRenderError() {
	globalManager.renderErrors.Inc()
}

// RecordRenderDuration records end-to-end render latency.
func RecordRenderDuration(latencyMs float64) {
	globalManager.renderDuration.Observe(latencyMs)
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// RecordCacheStore increments the cache store counter.
func RecordCacheStore() {
	globalManager.cacheStores.Inc()
}

// UpdateCacheEntries sets the current cache entry gauge.
func UpdateCacheEntries(n int) {
	globalManager.cacheEntries.Set(float64(n))
}

// RecordSpriteFetch increments the sprite fetch counter.
func RecordSpriteFetch() {
	globalManager.spriteFetches.Inc()
}

// RecordSpriteFetchError increments the sprite fetch error counter.
func RecordSpriteFetchError() {
	globalManager.spriteFetchErrors.Inc()
}

// RecordSpriteFetchLatency records a sprite fetch latency observation.
func RecordSpriteFetchLatency(latencyMs float64) {
	globalManager.spriteFetchLatency.Observe(latencyMs)
}

// UpdateTaskQueueDepth sets the background task queue depth gauge.
func UpdateTaskQueueDepth(depth int) {
	globalManager.taskQueueDepth.Set(float64(depth))
}

// RecordTaskDropped increments the dropped task counter.
func RecordTaskDropped() {
	globalManager.taskDropped.Inc()
}

// RecordTaskError increments the task failure counter.
func RecordTaskError() {
	globalManager.taskErrors.Inc()
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration observation.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSpeciesLoaded sets the loaded species gauge.
func UpdateSpeciesLoaded(n int) {
	globalManager.speciesLoaded.Set(float64(n))
}

// UpdateColorsLoaded sets the loaded colors gauge.
func UpdateColorsLoaded(n int) {
	globalManager.colorsLoaded.Set(float64(n))
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
