// Package metrics provides Prometheus metrics for the courtside scorekeeping service.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Match lifecycle
	matchesStarted   prometheus.Counter
	matchesFinalized *prometheus.CounterVec
	activeMatches    prometheus.Gauge

	// Scoring
	scoringEvents   *prometheus.CounterVec
	scoringRejected *prometheus.CounterVec
	eventsDuplicate prometheus.Counter
	pointsScored    *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	rateLimited         *prometheus.CounterVec

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByType      *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // process-wide collectors

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out

func init() { //nolint:gochecknoinits // global collectors
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates and registers a full set of collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "courtside",
		subsystem:        "scorekeeper",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) initializeMetrics() {
	m.matchesStarted = m.counter("matches_started_total", "Total number of matches started")
	m.matchesFinalized = m.counterVec("matches_finalized_total", "Total number of finalized matches by result", "result")
	m.activeMatches = m.gauge("active_matches", "Matches currently being played")

	m.scoringEvents = m.counterVec("scoring_events_total", "Accepted scoring events by side and point value", "side", "points")
	m.scoringRejected = m.counterVec("scoring_events_rejected_total", "Rejected scoring events by reason", "reason")
	m.eventsDuplicate = m.counter("scoring_events_duplicate_total", "Scoring events ignored because their event id was already applied")
	m.pointsScored = m.counterVec("points_scored_total", "Points scored by team", "team")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method",
		"endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.rateLimited = m.counterVec("http_rate_limited_total", "Requests rejected by the rate limiter", "endpoint")

	m.errorsByComponent = m.counterVec("errors_by_component_total", "Errors by component", "component", "error_type")
	m.errorsByType = m.counterVec("errors_by_type_total", "Errors by type and severity", "error_type", "severity")
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by HTTP endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
}

// RecordMatchStarted counts a new match.
func RecordMatchStarted() {
	globalManager.matchesStarted.Inc()
}

// RecordMatchFinalized counts a finished match by result ("win_a", "win_b", "tie").
func RecordMatchFinalized(result string) {
	globalManager.matchesFinalized.WithLabelValues(result).Inc()
}

// UpdateActiveMatches sets the number of matches in play.
func UpdateActiveMatches(count int) {
	globalManager.activeMatches.Set(float64(count))
}

// RecordScoringEvent counts an accepted event and adds its points to team.
func RecordScoringEvent(side, team string, points int) {
	globalManager.scoringEvents.WithLabelValues(side, strconv.Itoa(points)).Inc()
	globalManager.pointsScored.WithLabelValues(team).Add(float64(points))
}

// RecordScoringRejected counts an event rejected for reason.
func RecordScoringRejected(reason string) {
	globalManager.scoringRejected.WithLabelValues(reason).Inc()
}

// RecordEventDuplicate counts an event skipped as a duplicate.
func RecordEventDuplicate() {
	globalManager.eventsDuplicate.Inc()
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one request's duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordRateLimited counts a request rejected by the limiter.
func RecordRateLimited(endpoint string) {
	globalManager.rateLimited.WithLabelValues(endpoint).Inc()
}

// RecordErrorByComponent counts an error raised inside component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint counts an error answered by an HTTP endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap size gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the registry backing the global collectors.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
