package db

import (
	"context"

	"github.com/openchess/tournhall/pkg/domain"
)

type HallInterface interface {
	// Find lists every hall, ordered by id.
	Find(ctx context.Context) ([]domain.Hall, error)

	// Get retrieves one hall.
	//
	// It returns an error wrapping domain.ErrMissing when no such hall exists.
	Get(ctx context.Context, hallId int) (domain.Hall, error)

	// Rename updates the name of a hall.
	Rename(ctx context.Context, hallId int, name string) error

	// Tables lists the tables of a hall, ordered by id.
	Tables(ctx context.Context, hallId int) ([]domain.MatchTable, error)
}
