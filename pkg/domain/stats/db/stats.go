package db

import (
	"context"

	"github.com/openchess/tournhall/pkg/domain"
)

type StatsInterface interface {
	// Compute recalculates every aggregated statistic from the
	// transactional tables and stores the results, replacing the
	// previous generation in one transaction.
	Compute(ctx context.Context) error

	// Find lists the stored statistics, ordered by name.
	Find(ctx context.Context) ([]domain.Stat, error)

	// Get retrieves one statistic by name.
	//
	// Returns an error wrapping domain.ErrMissing when no such
	// statistic is stored.
	Get(ctx context.Context, name string) (domain.Stat, error)
}
