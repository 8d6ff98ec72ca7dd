package stats

import (
	"context"
	"errors"
	"time"

	"github.com/openchess/tournhall/cmd/loops/recurring"
	kdbstats "github.com/openchess/tournhall/pkg/domain/stats/db"
)

// initial value for task
func Seed() time.Time {
	return time.Time{}
}

// Task recomputes the aggregated statistics.
//
// The task never reports backlog, so with the forever policy it runs
// once per cooldown period.
func Task(istats kdbstats.StatsInterface) recurring.Task[time.Time] {
	return func(ctx context.Context, _ time.Time) (time.Time, bool, error) {
		if err := istats.Compute(ctx); err != nil {
			// Context cancelled/deadline exceeded are okay. It will be retried.
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return time.Now(), false, nil
			}
			return time.Now(), false, err
		}
		return time.Now(), false, nil
	}
}
