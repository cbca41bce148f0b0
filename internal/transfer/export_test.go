package transfer

import (
	"context"
	"time"
)

// WithSleep replaces the pause between batch transfers.
func WithSleep(fn func(ctx context.Context, d time.Duration)) Option {
	return func(o *Orchestrator) {
		o.sleep = fn
	}
}
