package player

import (
	"context"

	kpool "github.com/openchess/tournhall/pkg/conn/db/postgres/pool"
	"github.com/openchess/tournhall/pkg/domain"
	kdbplayer "github.com/openchess/tournhall/pkg/domain/player/db"
	kdbuser "github.com/openchess/tournhall/pkg/domain/user/db"
	xe "github.com/openchess/tournhall/pkg/errors"
)

type pgPlayer struct {
	pool  kpool.Pool
	users kdbuser.UserInterface
}

func New(pool kpool.Pool, users kdbuser.UserInterface) kdbplayer.PlayerInterface {
	return &pgPlayer{pool: pool, users: users}
}

func (p *pgPlayer) Summary(ctx context.Context, username string) (domain.PlayerSummary, error) {
	profile, err := p.users.GetPlayer(ctx, username)
	if err != nil {
		return domain.PlayerSummary{}, err
	}

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return domain.PlayerSummary{}, xe.Wrap(err)
	}
	defer conn.Release()

	summary := domain.PlayerSummary{Profile: profile}
	if err := conn.QueryRow(
		ctx,
		`
		select
			count(*),
			count(*) filter (where
				("white_player" = $1 and "result" = 'white wins')
				or ("black_player" = $1 and "result" = 'black wins')
			),
			count(*) filter (where
				("white_player" = $1 and "result" = 'black wins')
				or ("black_player" = $1 and "result" = 'white wins')
			),
			count(*) filter (where "result" = 'draw')
		from "match_assignments"
		where "white_player" = $1 or "black_player" = $1
		`,
		username,
	).Scan(
		&summary.MatchesPlayed, &summary.Wins, &summary.Losses, &summary.Draws,
	); err != nil {
		return domain.PlayerSummary{}, xe.Wrap(err)
	}

	return summary, nil
}

func (p *pgPlayer) Opponents(ctx context.Context, username string) (domain.OpponentReport, error) {
	// existence check, so an unknown username is Missing rather than empty.
	if _, err := p.users.GetPlayer(ctx, username); err != nil {
		return domain.OpponentReport{}, err
	}

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return domain.OpponentReport{}, xe.Wrap(err)
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		with "o" as (
			select case when "white_player" = $1 then "black_player" else "white_player" end as "opponent"
			from "match_assignments"
			where "white_player" = $1 or "black_player" = $1
		)
		select "o"."opponent", "p"."elo_rating", count(*) as "games"
		from "o"
		inner join "players" as "p" on "p"."username" = "o"."opponent"
		group by "o"."opponent", "p"."elo_rating"
		order by "games" desc, "o"."opponent"
		`,
		username,
	)
	if err != nil {
		return domain.OpponentReport{}, xe.Wrap(err)
	}
	defer rows.Close()

	report := domain.OpponentReport{Opponents: []domain.OpponentRecord{}}
	for rows.Next() {
		var rec domain.OpponentRecord
		if err := rows.Scan(&rec.Username, &rec.EloRating, &rec.Games); err != nil {
			return domain.OpponentReport{}, xe.Wrap(err)
		}
		report.Opponents = append(report.Opponents, rec)
	}
	if err := rows.Err(); err != nil {
		return domain.OpponentReport{}, xe.Wrap(err)
	}

	if len(report.Opponents) == 0 {
		return report, nil
	}

	// rows come ordered by games desc; the head carries the max.
	maxGames := report.Opponents[0].Games
	eloTotal := 0
	for _, rec := range report.Opponents {
		if rec.Games != maxGames {
			break
		}
		report.MostFrequent = append(report.MostFrequent, rec.Username)
		eloTotal += rec.EloRating
	}
	report.MostFrequentAvgElo = float64(eloTotal) / float64(len(report.MostFrequent))

	return report, nil
}
