package patterns

import (
	"errors"
	"fmt"
	"time"

	"github.com/ashendes/catalog-service/internal/metrics"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// CircuitBreakerWrapper wraps gobreaker with metrics
type CircuitBreakerWrapper struct {
	*gobreaker.CircuitBreaker
	name string
}

// NewCircuitBreaker creates a circuit breaker that reports its state to Prometheus
func NewCircuitBreaker(name string) *CircuitBreakerWrapper {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,                // Probes allowed in half-open state
		Interval:    30 * time.Second, // Window to track failures
		Timeout:     10 * time.Second, // Time to wait before half-open
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(cbName string, from gobreaker.State, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(cbName).Set(stateValue(to))

			log.WithFields(log.Fields{
				"circuit": cbName,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return &CircuitBreakerWrapper{
		CircuitBreaker: cb,
		name:           name,
	}
}

// Run executes fn through the breaker
func (cb *CircuitBreakerWrapper) Run(fn func() error) error {
	_, err := cb.CircuitBreaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if err != nil {
		metrics.CircuitBreakerFailures.WithLabelValues(cb.name).Inc()
	}
	return FormatError(cb.name, err)
}

// GetState returns the current state of the circuit breaker
func (cb *CircuitBreakerWrapper) GetState() string {
	return cb.State().String()
}

// GetStateValue returns numeric value for the state (0=closed, 1=open, 2=half-open)
func (cb *CircuitBreakerWrapper) GetStateValue() int {
	return int(stateValue(cb.State()))
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}

// FormatError formats an error message with circuit breaker info
func FormatError(circuitName string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) {
		return fmt.Errorf("circuit breaker %s is open: %w", circuitName, err)
	}
	if errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("circuit breaker %s: too many requests in half-open state: %w", circuitName, err)
	}
	return err
}
