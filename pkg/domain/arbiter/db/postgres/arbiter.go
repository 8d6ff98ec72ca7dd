package arbiter

import (
	"context"

	kpool "github.com/openchess/tournhall/pkg/conn/db/postgres/pool"
	"github.com/openchess/tournhall/pkg/domain"
	kdbarbiter "github.com/openchess/tournhall/pkg/domain/arbiter/db"
	kdbuser "github.com/openchess/tournhall/pkg/domain/user/db"
	xe "github.com/openchess/tournhall/pkg/errors"
)

type pgArbiter struct {
	pool  kpool.Pool
	users kdbuser.UserInterface
}

func New(pool kpool.Pool, users kdbuser.UserInterface) kdbarbiter.ArbiterInterface {
	return &pgArbiter{pool: pool, users: users}
}

func (a *pgArbiter) Summary(ctx context.Context, username string) (domain.ArbiterSummary, error) {
	profile, err := a.users.GetArbiter(ctx, username)
	if err != nil {
		return domain.ArbiterSummary{}, err
	}

	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return domain.ArbiterSummary{}, xe.Wrap(err)
	}
	defer conn.Release()

	summary := domain.ArbiterSummary{Profile: profile}
	if err := conn.QueryRow(
		ctx,
		`
		select count("rating"), avg("rating")
		from "matches"
		where "arbiter_username" = $1 and "rating" is not null
		`,
		username,
	).Scan(&summary.MatchesRated, &summary.AverageRating); err != nil {
		return domain.ArbiterSummary{}, xe.Wrap(err)
	}

	return summary, nil
}
