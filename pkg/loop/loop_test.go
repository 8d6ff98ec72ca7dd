package loop_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openchess/tournhall/pkg/loop"
)

func TestStart(t *testing.T) {

	t.Run("it repeats tasks until the task breaks", func(t *testing.T) {
		ctx := context.Background()

		actual, err := loop.Start(
			ctx, 0, func(_ context.Context, v int) (int, loop.Next) {
				v += 1
				if 10 <= v {
					return v, loop.Break(nil)
				}
				return v, loop.Continue(0)
			},
		)
		if err != nil {
			t.Fatalf("loop caused error unexpectedly: %v", err)
		}
		if actual != 10 {
			t.Errorf("unmatch: actual=%d, expected=10", actual)
		}
	})

	t.Run("it passes Break(error) through", func(t *testing.T) {
		ctx := context.Background()
		expectedErr := errors.New("fake error")

		actual, err := loop.Start(
			ctx, 0, func(_ context.Context, v int) (int, loop.Next) {
				v += 1
				if 3 <= v {
					return v, loop.Break(expectedErr)
				}
				return v, loop.Continue(0)
			},
		)
		if !errors.Is(err, expectedErr) {
			t.Errorf("unmatch error: actual=%v, expected=%v", err, expectedErr)
		}
		if actual != 3 {
			t.Errorf("unmatch: actual=%d, expected=3", actual)
		}
	})

	t.Run("it stops when context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		started := false
		_, err := loop.Start(
			ctx, 0, func(_ context.Context, v int) (int, loop.Next) {
				started = true
				return v, loop.Continue(0)
			},
		)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("unmatch error: actual=%v, expected=%v", err, context.Canceled)
		}
		if started {
			t.Error("task has started with canceled context, unexpectedly")
		}
	})

	t.Run("it stops between iterations when context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		count := 0
		_, err := loop.Start(
			ctx, 0, func(_ context.Context, v int) (int, loop.Next) {
				count += 1
				cancel()
				return v, loop.Continue(time.Hour) // should not wait full hour
			},
		)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("unmatch error: actual=%v, expected=%v", err, context.Canceled)
		}
		if count != 1 {
			t.Errorf("task ran %d times, expected 1", count)
		}
	})
}
