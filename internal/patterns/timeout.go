package patterns

import (
	"context"
	"time"
)

// WithTimeout derives a context that fails fast after duration
func WithTimeout(parent context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = DefaultTimeout
	}
	return context.WithTimeout(parent, duration)
}

// DefaultTimeout bounds health probes and client calls
const DefaultTimeout = 3 * time.Second

// SessionWaitTimeout is how long a request waits for a database session slot
const SessionWaitTimeout = 5 * time.Second
