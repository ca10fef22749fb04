package patterns

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ashendes/catalog-service/internal/metrics"
)

// ErrBulkheadFull is returned when no slot frees up within the wait limit
var ErrBulkheadFull = errors.New("bulkhead full")

// Bulkhead caps how many callers can hold a shared resource at once
type Bulkhead struct {
	semaphore chan struct{}
	wait      time.Duration
	name      string
}

// NewBulkhead creates a bulkhead with size slots. Callers wait at most wait for one.
func NewBulkhead(size int, wait time.Duration, name string) *Bulkhead {
	if size < 1 {
		size = 1
	}
	return &Bulkhead{
		semaphore: make(chan struct{}, size),
		wait:      wait,
		name:      name,
	}
}

// Execute runs fn while holding a slot
func (b *Bulkhead) Execute(ctx context.Context, fn func() error) error {
	timer := time.NewTimer(b.wait)
	defer timer.Stop()

	select {
	case b.semaphore <- struct{}{}:
		metrics.BulkheadActive.WithLabelValues(b.name).Inc()

		defer func() {
			<-b.semaphore
			metrics.BulkheadActive.WithLabelValues(b.name).Dec()
		}()

		return fn()

	case <-timer.C:
		metrics.BulkheadRejected.WithLabelValues(b.name).Inc()
		return fmt.Errorf("%s: timeout acquiring slot: %w", b.name, ErrBulkheadFull)

	case <-ctx.Done():
		return ctx.Err()
	}
}

// InUse returns the number of slots currently held
func (b *Bulkhead) InUse() int {
	return len(b.semaphore)
}

// GetName returns the bulkhead name
func (b *Bulkhead) GetName() string {
	return b.name
}
