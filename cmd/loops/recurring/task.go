package recurring

import (
	"context"

	"github.com/openchess/tournhall/pkg/loop"
)

// Task is a loop.Task body which additionally reports whether it did
// something in this cycle (= more backlog can be waiting).
type Task[T any] func(context.Context, T) (T, bool, error)

// a Task which execute rt ('rt()') and p.Next() with the result.
func (rt Task[T]) Applied(p Policy) loop.Task[T] {
	return func(ctx context.Context, t T) (T, loop.Next) {
		new, ok, err := rt(ctx, t)
		return new, p.Next(ok, err)
	}
}
