package api

import (
	"context"
	"net/http"
	"time"

	"github.com/ashendes/catalog-service/internal/patterns"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Pinger is anything that can check the database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker probes the database with a timeout, behind a circuit breaker so
// a dead database is not hammered by probes.
type HealthChecker struct {
	pinger  Pinger
	breaker *patterns.CircuitBreakerWrapper
	timeout time.Duration
}

// NewHealthChecker creates a HealthChecker for p
func NewHealthChecker(p Pinger, timeout time.Duration) *HealthChecker {
	return &HealthChecker{
		pinger:  p,
		breaker: patterns.NewCircuitBreaker("database-ping"),
		timeout: timeout,
	}
}

// Check returns nil when the database answered in time
func (hc *HealthChecker) Check(ctx context.Context) error {
	return hc.breaker.Run(func() error {
		pingCtx, cancel := patterns.WithTimeout(ctx, hc.timeout)
		defer cancel()
		return hc.pinger.Ping(pingCtx)
	})
}

// BreakerState reports the probe circuit's state
func (hc *HealthChecker) BreakerState() string {
	return hc.breaker.GetState()
}

func (h *Handler) health(c *gin.Context) {
	status := "ok"
	if err := h.checker.Check(c.Request.Context()); err != nil {
		log.WithField("circuit", h.checker.BreakerState()).Warn("Health check failed: ", err)
		status = "error"
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"Hello": "World"})
}
