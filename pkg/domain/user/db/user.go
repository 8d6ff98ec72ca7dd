package db

import (
	"context"

	"github.com/openchess/tournhall/pkg/domain"
)

type UserInterface interface {
	// New registers a user and its role profile in one transaction.
	//
	// It returns an error wrapping domain.ErrAlreadyExists when the
	// username is taken.
	New(ctx context.Context, user domain.NewUser) error

	// Get retrieves the account row of the username.
	//
	// It returns an error wrapping domain.ErrMissing when no such user exists.
	Get(ctx context.Context, username string) (domain.User, error)

	// GetPlayer retrieves the player profile of the username,
	// together with the teams the player belongs to.
	GetPlayer(ctx context.Context, username string) (domain.PlayerProfile, error)

	// GetCoach retrieves the coach profile of the username.
	GetCoach(ctx context.Context, username string) (domain.CoachProfile, error)

	// GetArbiter retrieves the arbiter profile of the username.
	GetArbiter(ctx context.Context, username string) (domain.ArbiterProfile, error)
}
