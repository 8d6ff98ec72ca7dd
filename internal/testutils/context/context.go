package context

import (
	"context"
	"testing"
	"time"
)

// WithTest wraps ctx with a deadline 1 second before the test's
// deadline, leaving room for clean-up.
func WithTest(ctx context.Context, t *testing.T) (context.Context, func()) {
	if deadline, ok := t.Deadline(); ok {
		dctx, cancel := context.WithDeadline(ctx, deadline.Add(-time.Second))
		return dctx, cancel
	}
	return ctx, func() {}
}
