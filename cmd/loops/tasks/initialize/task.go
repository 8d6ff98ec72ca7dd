package initialize

import (
	"context"

	"github.com/openchess/tournhall/cmd/loops/recurring"
	kdbschema "github.com/openchess/tournhall/pkg/domain/schema/db"
)

// initial value for task
func Seed() int {
	return 0
}

// Task upgrades the database schema to the newest version in the
// repository. It reports backlog only while the version moves, so the
// backlog policy stops the loop once the schema is current.
func Task(ischema kdbschema.SchemaInterface) recurring.Task[int] {
	return func(ctx context.Context, version int) (int, bool, error) {
		if err := ischema.Upgrade(ctx); err != nil {
			return version, false, err
		}
		current, err := ischema.Version(ctx)
		if err != nil {
			return version, false, err
		}
		return current, current != version, nil
	}
}
