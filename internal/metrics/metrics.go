// Package metrics defines the Prometheus instruments exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis Metrics
var (
	// AnalyzeTotal tracks analyze requests by outcome label
	AnalyzeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyze_requests_total",
			Help: "Total analyze requests by sentiment label (positive/negative/neutral) and result",
		},
		[]string{"label", "result"},
	)

	// AnalyzeDuration tracks end-to-end scoring latency
	AnalyzeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analyze_duration_seconds",
			Help:    "Text scoring duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1},
		},
	)

	// AnalyzeTextLength tracks the length distribution of analyzed texts
	AnalyzeTextLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analyze_text_length_runes",
			Help:    "Length of analyzed texts in runes",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
		},
	)
)

// History Store Metrics
var (
	// HistoryOpsTotal tracks history store operations by operation and status
	HistoryOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_operations_total",
			Help: "Total history store operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// HistorySessions tracks sessions currently held by the in-memory store
	HistorySessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "history_sessions_current",
			Help: "Number of sessions currently held by the in-memory history store",
		},
	)

	// HistorySessionsPruned tracks idle sessions pruned from the in-memory store
	HistorySessionsPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_sessions_pruned_total",
			Help: "Total idle sessions pruned from the in-memory history store",
		},
	)
)

// WebSocket Metrics
var (
	// WebSocketConnectionsCurrent tracks current active WebSocket connections
	WebSocketConnectionsCurrent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections_current",
			Help: "Current number of active WebSocket connections",
		},
	)

	// WebSocketConnectionsTotal tracks total WebSocket connection attempts by result
	WebSocketConnectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_connections_total",
			Help: "Total WebSocket connection attempts by result (success/error/rejected)",
		},
		[]string{"result"},
	)

	// WebSocketSlowClientsEvicted tracks slow clients evicted due to full send buffers
	WebSocketSlowClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_slow_clients_evicted_total",
			Help: "Total slow WebSocket clients evicted due to buffer full",
		},
	)
)

// Circuit Breaker Metrics
var (
	// CircuitBreakerState exposes the current breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)

	// CircuitBreakerStateChanges counts breaker transitions by resulting state
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Total circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)
)

// Build Information Metrics
var (
	// BuildInfo is a gauge that always returns 1, with build metadata as labels
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "build_info",
			Help: "Build information with version, commit, build_time, and go_version labels (value is always 1)",
		},
		[]string{"version", "commit", "build_time", "go_version"},
	)
)

// HTTP Request Metrics
// Note: http_errors_total{type} is provided by the internal/errors package.
