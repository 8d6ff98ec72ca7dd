package match

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	kpool "github.com/openchess/tournhall/pkg/conn/db/postgres/pool"
	"github.com/openchess/tournhall/pkg/domain"
	kerr "github.com/openchess/tournhall/pkg/domain/errors/dberrors/postgres"
	kdbmatch "github.com/openchess/tournhall/pkg/domain/match/db"
	xe "github.com/openchess/tournhall/pkg/errors"
)

type pgMatch struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbmatch.MatchInterface {
	return &pgMatch{pool: pool}
}

func (m *pgMatch) New(ctx context.Context, spec domain.NewMatch) (int, error) {
	if spec.TeamWhite == spec.TeamBlack {
		return 0, domain.ErrSameTeam
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return 0, xe.Wrap(err)
	}
	defer tx.Rollback(ctx)

	// lock the booked resources to serialize concurrent scheduling.
	if err := tx.QueryRow(
		ctx,
		`select "id" from "match_tables" where "id" = $1 and "hall_id" = $2 for update`,
		spec.TableId, spec.HallId,
	).Scan(nil); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, kerr.Missing{Table: "match_tables", Identity: "requested table in the hall"}
		}
		return 0, xe.Wrap(err)
	}
	if err := tx.QueryRow(
		ctx,
		`select "username" from "arbiters" where "username" = $1 for update`,
		spec.ArbiterUsername,
	).Scan(nil); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, kerr.Missing{Table: "arbiters", Identity: spec.ArbiterUsername}
		}
		return 0, xe.Wrap(err)
	}
	for _, teamId := range []int{spec.TeamWhite, spec.TeamBlack} {
		if err := tx.QueryRow(
			ctx,
			`select "id" from "teams" where "id" = $1 for update`,
			teamId,
		).Scan(nil); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, kerr.Missing{Table: "teams", Identity: "requested team"}
			}
			return 0, xe.Wrap(err)
		}
	}

	// a match takes two consecutive slots; starts overlap when they
	// are less than two slots apart.
	var conflicts int
	if err := tx.QueryRow(
		ctx,
		`
		select count(*) from "matches"
		where "date" = $1
		  and abs("time_slot" - $2) < 2
		  and (
			("hall_id" = $3 and "table_id" = $4)
			or "arbiter_username" = $5
			or "team_white" in ($6, $7)
			or "team_black" in ($6, $7)
		  )
		`,
		spec.Date, spec.TimeSlot,
		spec.HallId, spec.TableId,
		spec.ArbiterUsername,
		spec.TeamWhite, spec.TeamBlack,
	).Scan(&conflicts); err != nil {
		return 0, xe.Wrap(err)
	}
	if 0 < conflicts {
		return 0, domain.ErrBooked
	}

	var matchId int
	if err := tx.QueryRow(
		ctx,
		`
		insert into "matches"
			("date", "time_slot", "hall_id", "table_id", "team_white", "team_black", "arbiter_username")
		values ($1, $2, $3, $4, $5, $6, $7)
		returning "id"
		`,
		spec.Date, spec.TimeSlot, spec.HallId, spec.TableId,
		spec.TeamWhite, spec.TeamBlack, spec.ArbiterUsername,
	).Scan(&matchId); err != nil {
		return 0, xe.Wrap(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, xe.Wrap(err)
	}
	return matchId, nil
}

const matchColumns = `
	"m"."id", "m"."date", "m"."time_slot",
	"m"."hall_id", "m"."table_id",
	"m"."team_white", "m"."team_black", "m"."arbiter_username",
	"m"."rating", "m"."rated_at",
	"a"."white_player", "a"."black_player", "a"."result"
`

func scanMatch(row pgx.Row) (domain.Match, error) {
	var match domain.Match
	var rating *float64
	var ratedAt *time.Time
	var white, black, result *string

	if err := row.Scan(
		&match.Id, &match.Date, &match.TimeSlot,
		&match.HallId, &match.TableId,
		&match.TeamWhite, &match.TeamBlack, &match.ArbiterUsername,
		&rating, &ratedAt,
		&white, &black, &result,
	); err != nil {
		return domain.Match{}, err
	}

	if rating != nil && ratedAt != nil {
		match.Rating = &domain.Rating{Value: *rating, RatedAt: *ratedAt}
	}
	if white != nil && black != nil {
		a := &domain.MatchAssignment{WhitePlayer: *white, BlackPlayer: *black}
		if result != nil {
			r, err := domain.AsMatchResult(*result)
			if err != nil {
				return domain.Match{}, err
			}
			a.Result = &r
		}
		match.Assignment = a
	}
	return match, nil
}

func (m *pgMatch) Find(ctx context.Context, query domain.MatchFindQuery) ([]domain.Match, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select `+matchColumns+`
		from "matches" as "m"
		left join "match_assignments" as "a" on "a"."match_id" = "m"."id"
		where ($1::int is null or "m"."team_white" = $1 or "m"."team_black" = $1)
		  and ($2::varchar is null or "m"."arbiter_username" = $2)
		  and ($3::varchar is null or "a"."white_player" = $3 or "a"."black_player" = $3)
		  and ($4::date is null or $4 <= "m"."date")
		  and ($5::date is null or "m"."date" <= $5)
		order by "m"."date", "m"."time_slot", "m"."id"
		`,
		query.TeamId, query.ArbiterUsername, query.PlayerUsername,
		query.Since, query.Until,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	matches := []domain.Match{}
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, xe.Wrap(err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}
	return matches, nil
}

func (m *pgMatch) Get(ctx context.Context, matchId int) (domain.Match, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return domain.Match{}, xe.Wrap(err)
	}
	defer conn.Release()

	match, err := scanMatch(conn.QueryRow(
		ctx,
		`
		select `+matchColumns+`
		from "matches" as "m"
		left join "match_assignments" as "a" on "a"."match_id" = "m"."id"
		where "m"."id" = $1
		`,
		matchId,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Match{}, kerr.Missing{Table: "matches", Identity: "requested match"}
		}
		return domain.Match{}, xe.Wrap(err)
	}
	return match, nil
}

// lockMatch reads a match row with "for update" inside tx.
func lockMatch(ctx context.Context, tx kpool.Tx, matchId int) (domain.MatchBody, error) {
	var body domain.MatchBody
	if err := tx.QueryRow(
		ctx,
		`
		select "id", "date", "time_slot", "hall_id", "table_id",
		       "team_white", "team_black", "arbiter_username"
		from "matches" where "id" = $1 for update
		`,
		matchId,
	).Scan(
		&body.Id, &body.Date, &body.TimeSlot, &body.HallId, &body.TableId,
		&body.TeamWhite, &body.TeamBlack, &body.ArbiterUsername,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MatchBody{}, kerr.Missing{Table: "matches", Identity: "requested match"}
		}
		return domain.MatchBody{}, xe.Wrap(err)
	}
	return body, nil
}

func (m *pgMatch) Assign(ctx context.Context, matchId int, whitePlayer string, blackPlayer string) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return xe.Wrap(err)
	}
	defer tx.Rollback(ctx)

	body, err := lockMatch(ctx, tx, matchId)
	if err != nil {
		return err
	}

	var result *string
	if err := tx.QueryRow(
		ctx,
		`select "result" from "match_assignments" where "match_id" = $1`,
		matchId,
	).Scan(&result); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return xe.Wrap(err)
	}
	if result != nil {
		// the outcome is on record; the lineup must not change anymore.
		return domain.ErrMatchProtected
	}

	for _, member := range []struct {
		player string
		teamId int
	}{
		{player: whitePlayer, teamId: body.TeamWhite},
		{player: blackPlayer, teamId: body.TeamBlack},
	} {
		var ok int
		if err := tx.QueryRow(
			ctx,
			`select count(*) from "player_teams" where "player_username" = $1 and "team_id" = $2`,
			member.player, member.teamId,
		).Scan(&ok); err != nil {
			return xe.Wrap(err)
		}
		if ok == 0 {
			return domain.ErrNotTeamMember
		}
	}

	// a player may stand for several teams, but plays one board at a
	// time. check their other matches of the day for overlapping slots.
	rows, err := tx.Query(
		ctx,
		`
		select "m"."time_slot"
		from "match_assignments" as "a"
		inner join "matches" as "m" on "m"."id" = "a"."match_id"
		where "a"."match_id" <> $1
		  and "m"."date" = $2
		  and ("a"."white_player" in ($3, $4) or "a"."black_player" in ($3, $4))
		`,
		matchId, body.Date, whitePlayer, blackPlayer,
	)
	if err != nil {
		return xe.Wrap(err)
	}
	occupied := []int{}
	for rows.Next() {
		var slot int
		if err := rows.Scan(&slot); err != nil {
			rows.Close()
			return xe.Wrap(err)
		}
		occupied = append(occupied, slot)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return xe.Wrap(err)
	}
	for _, slot := range occupied {
		if domain.SlotsOverlap(body.TimeSlot, slot) {
			return domain.ErrBooked
		}
	}

	if _, err := tx.Exec(
		ctx,
		`
		insert into "match_assignments" ("match_id", "white_player", "black_player")
		values ($1, $2, $3)
		on conflict ("match_id") do update
		set "white_player" = excluded."white_player",
		    "black_player" = excluded."black_player"
		`,
		matchId, whitePlayer, blackPlayer,
	); err != nil {
		return xe.Wrap(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return xe.Wrap(err)
	}
	return nil
}

func (m *pgMatch) SetResult(ctx context.Context, matchId int, arbiterUsername string, result domain.MatchResult) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return xe.Wrap(err)
	}
	defer tx.Rollback(ctx)

	body, err := lockMatch(ctx, tx, matchId)
	if err != nil {
		return err
	}
	if body.ArbiterUsername != arbiterUsername {
		return domain.ErrNotAssignedArbiter
	}
	if played := body.Date.Before(startOfToday()); !played {
		return domain.ErrNotYetPlayed
	}

	cmd, err := tx.Exec(
		ctx,
		`update "match_assignments" set "result" = $1 where "match_id" = $2`,
		result.String(), matchId,
	)
	if err != nil {
		return xe.Wrap(err)
	}
	if cmd.RowsAffected() == 0 {
		return kerr.Missing{Table: "match_assignments", Identity: "assignment of the match"}
	}

	if err := tx.Commit(ctx); err != nil {
		return xe.Wrap(err)
	}
	return nil
}

func (m *pgMatch) Rate(ctx context.Context, matchId int, arbiterUsername string, rating float64) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return xe.Wrap(err)
	}
	defer tx.Rollback(ctx)

	body, err := lockMatch(ctx, tx, matchId)
	if err != nil {
		return err
	}
	if body.ArbiterUsername != arbiterUsername {
		return domain.ErrNotAssignedArbiter
	}
	if played := body.Date.Before(startOfToday()); !played {
		return domain.ErrNotYetPlayed
	}

	// write-once: the guard "rating is null" makes ratings one-way.
	cmd, err := tx.Exec(
		ctx,
		`update "matches" set "rating" = $1, "rated_at" = now() where "id" = $2 and "rating" is null`,
		rating, matchId,
	)
	if err != nil {
		if kerr.IsCheckViolation(err) {
			return domain.ErrInvalidRating
		}
		return xe.Wrap(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAlreadyRated
	}

	if err := tx.Commit(ctx); err != nil {
		return xe.Wrap(err)
	}
	return nil
}

func (m *pgMatch) Delete(ctx context.Context, matchId int) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return xe.Wrap(err)
	}
	defer tx.Rollback(ctx)

	if _, err := lockMatch(ctx, tx, matchId); err != nil {
		return err
	}

	cmd, err := tx.Exec(
		ctx,
		`delete from "matches" where "id" = $1 and "rating" is null`,
		matchId,
	)
	if err != nil {
		return xe.Wrap(err)
	}
	if cmd.RowsAffected() == 0 {
		// the row exists (locked above) but is rated.
		return domain.ErrMatchProtected
	}

	if err := tx.Commit(ctx); err != nil {
		return xe.Wrap(err)
	}
	return nil
}

// startOfToday is midnight of the current day in UTC.
// Matches are stored date-only, so a match counts as played only once
// its date is over: results and ratings wait until the day after.
func startOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
