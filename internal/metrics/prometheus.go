package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks total HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "endpoint", "status"},
	)

	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "endpoint"},
	)

	// OperationsTotal counts catalog operations by entity and outcome
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_operations_total",
			Help: "Total number of catalog operations",
		},
		[]string{"entity", "operation", "outcome"},
	)

	// ConstraintViolations counts writes rejected by the database
	ConstraintViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_constraint_violations_total",
			Help: "Total number of writes rejected by a database constraint",
		},
		[]string{"entity", "kind"},
	)

	// BulkheadActive tracks slots held in a bulkhead
	BulkheadActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "db_sessions_active",
			Help: "Number of database sessions currently open",
		},
		[]string{"bulkhead_name"},
	)

	// BulkheadRejected tracks callers turned away by a bulkhead
	BulkheadRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_sessions_rejected_total",
			Help: "Total number of requests that could not get a database session",
		},
		[]string{"bulkhead_name"},
	)

	// CircuitBreakerState tracks circuit breaker state (0=closed, 1=open, 2=half-open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"circuit_name"},
	)

	// CircuitBreakerFailures tracks circuit breaker failures
	CircuitBreakerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_failures_total",
			Help: "Total number of circuit breaker failures",
		},
		[]string{"circuit_name"},
	)
)

// PrometheusMiddleware creates a Gin middleware for automatic metrics collection
func PrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestsTotal.WithLabelValues(
			serviceName,
			c.Request.Method,
			endpoint,
			status,
		).Inc()

		RequestDuration.WithLabelValues(
			serviceName,
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}
