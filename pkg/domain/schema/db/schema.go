package db

import "context"

// SchemaInterface represents the database schema of the tournament registry.
type SchemaInterface interface {
	// Upgrade applies schema versions newer than the one in the database.
	Upgrade(ctx context.Context) error

	// Version returns the schema version found in the database.
	// It is 0 for a blank database.
	Version(ctx context.Context) (int, error)

	// Context derives a context which is cancelled when the schema in
	// the database falls behind the schema repository on disk.
	Context(ctx context.Context) (context.Context, context.CancelFunc)
}
