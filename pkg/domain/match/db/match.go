package db

import (
	"context"

	"github.com/openchess/tournhall/pkg/domain"
)

type MatchInterface interface {
	// New schedules a match.
	//
	// The booking is checked inside one transaction:
	// the table, the arbiter and both teams must be free of matches
	// overlapping the requested slots on the requested date.
	//
	// Returns
	//
	// - int: id of the new match
	//
	// - error: wrapping domain.ErrBooked on a scheduling conflict,
	//   domain.ErrMissing when the hall, table, arbiter or a team
	//   does not exist.
	New(ctx context.Context, m domain.NewMatch) (int, error)

	// Find lists matches narrowed by the query, ordered by date and slot.
	Find(ctx context.Context, query domain.MatchFindQuery) ([]domain.Match, error)

	// Get retrieves one match with its assignment and rating.
	Get(ctx context.Context, matchId int) (domain.Match, error)

	// Assign sets (or replaces) the players fielded for a match.
	//
	// Each player must be a member of the team they play for,
	// otherwise the error wraps domain.ErrNotTeamMember.
	Assign(ctx context.Context, matchId int, whitePlayer string, blackPlayer string) error

	// SetResult records the outcome of a played match.
	//
	// Only the assigned arbiter may do this; otherwise the error wraps
	// domain.ErrNotAssignedArbiter. Before the match date it wraps
	// domain.ErrNotYetPlayed.
	SetResult(ctx context.Context, matchId int, arbiterUsername string, result domain.MatchResult) error

	// Rate records the arbiter's one-shot evaluation of a played match.
	//
	// Ratings are write-once: rating a rated match wraps
	// domain.ErrAlreadyRated.
	Rate(ctx context.Context, matchId int, arbiterUsername string, rating float64) error

	// Delete removes a match and its assignment.
	//
	// Rated matches are protected; deleting one wraps domain.ErrMatchProtected.
	Delete(ctx context.Context, matchId int) error
}
