package db

import (
	"context"

	"github.com/openchess/tournhall/pkg/domain"
)

type CoachInterface interface {
	// NewContract signs a coach with a team for a date range.
	//
	// A coach may serve one team at a time; when the period overlaps
	// any contract of the coach the error wraps domain.ErrContractOverlap.
	NewContract(ctx context.Context, contract domain.CoachContract) error

	// Contracts lists every contract of the coach, ordered by start date.
	Contracts(ctx context.Context, coachUsername string) ([]domain.CoachContract, error)
}
