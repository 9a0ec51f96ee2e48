package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glbconnect",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "glbconnect",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// Live WebSocket connections
	GatewayConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "glbconnect",
			Subsystem: "gateway",
			Name:      "connections",
			Help:      "Currently open WebSocket connections",
		},
	)

	// Relayed gateway events
	GatewayEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glbconnect",
			Subsystem: "gateway",
			Name:      "events_total",
			Help:      "Gateway events relayed, by event name and outcome",
		},
		[]string{"event", "status"},
	)

	// Persisted direct messages
	MessagesSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "glbconnect",
			Subsystem: "messages",
			Name:      "sent_total",
			Help:      "Direct messages persisted",
		},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordGatewayEvent records one relayed gateway event
func RecordGatewayEvent(event, status string) {
	GatewayEventsTotal.WithLabelValues(event, status).Inc()
}
