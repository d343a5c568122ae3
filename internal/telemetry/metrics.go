// Package telemetry provides application-level observability for the
// registration backend.
//
// # Prometheus Metrics Endpoint
//
// All metrics are registered against the default Prometheus registry and are
// automatically available on the side-channel HTTP server started by main.go:
//
//	GET http(s)://<host>:<REG_TELEMETRY_METRICS_PROMETHEUS_PORT>/metrics
//
// Default port: 9090. The endpoint is NOT served by the Gin router, which keeps
// the scrape path off the public ingress and outside the rate-limiting
// middleware.
//
// # Metric Groups
//
//   - HTTP request counters and latency histograms (labelled by route template,
//     not raw URL, to keep label cardinality bounded)
//   - Registration submission outcome counters
//   - SMS delivery outcome counters
//   - Database connection pool gauge (polled every 30 s)
package telemetry

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/event-registration/registration-backend/internal/safego"
)

// HTTP metrics — labelled by method, route template, and status code.
//
// Example PromQL queries:
//   - Request rate (req/s, 5 m window):  rate(http_requests_total[5m])
//   - Error rate (%):                    sum(rate(http_requests_total{status=~"5.."}[5m])) / sum(rate(http_requests_total[5m])) * 100
//   - p99 latency per route:             histogram_quantile(0.99, sum by (path, le) (rate(http_request_duration_seconds_bucket[5m])))
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route template, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)
)

// Submission pipeline metrics.
//
// RegistrationsTotal counts submission outcomes with label {outcome} ∈
// {accepted, invalid, duplicate, store_error}. A rising duplicate rate usually
// means people resubmitting after a slow SMS, not abuse.
//
// SMSSendTotal counts confirmation message attempts with label {outcome} ∈
// {delivered, failed, skipped}. "skipped" means the gateway was not configured.
//
// Example PromQL queries:
//   - Acceptance rate:  sum(rate(registrations_total{outcome="accepted"}[1h]))
//   - SMS failure rate: sum(rate(sms_send_total{outcome="failed"}[1h]))
var (
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of registration submissions, by outcome.",
		},
		[]string{"outcome"},
	)

	SMSSendTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sms_send_total",
			Help: "Total number of confirmation SMS attempts, by outcome.",
		},
		[]string{"outcome"},
	)
)

// DBOpenConnections is sampled by StartDBStatsCollector rather than
// per-request to avoid the overhead of sql.DB.Stats() on the hot path.
//
// Example PromQL queries:
//   - Pool utilisation (%): db_open_connections / <REG_DATABASE_MAX_CONNECTIONS> * 100
var DBOpenConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "db_open_connections",
		Help: "Current number of open database connections in the pool.",
	},
)

// StartDBStatsCollector launches a background goroutine that samples sql.DB
// connection pool statistics every 30 seconds and updates the DBOpenConnections
// gauge. The goroutine exits cleanly when the database becomes unreachable
// (db.Ping fails), which happens automatically when the application shuts down
// and defers db.Close().
//
// Call this once, immediately after db.Connect() succeeds in main.go:
//
//	telemetry.StartDBStatsCollector(database)
func StartDBStatsCollector(db *sql.DB) {
	safego.Go(func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if err := db.Ping(); err != nil {
				slog.Warn("db stats collector: database unreachable, stopping collector", "error", err)
				return
			}
			DBOpenConnections.Set(float64(db.Stats().OpenConnections))
		}
	})
}
