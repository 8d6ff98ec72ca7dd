package db

import (
	"context"

	"github.com/openchess/tournhall/pkg/domain"
)

type PlayerInterface interface {
	// Summary reports the profile and the win/loss/draw record of a player.
	//
	// It returns an error wrapping domain.ErrMissing when no such player exists.
	Summary(ctx context.Context, username string) (domain.PlayerSummary, error)

	// Opponents reports everyone the player has been paired against,
	// with the most frequent opponents and their average Elo.
	Opponents(ctx context.Context, username string) (domain.OpponentReport, error)
}
