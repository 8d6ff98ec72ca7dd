package db

import (
	"context"

	"github.com/openchess/tournhall/pkg/domain"
)

type ArbiterInterface interface {
	// Summary reports the profile and the rating record of an arbiter.
	//
	// AverageRating is nil while the arbiter has rated nothing.
	// It returns an error wrapping domain.ErrMissing when no such arbiter exists.
	Summary(ctx context.Context, username string) (domain.ArbiterSummary, error)
}
