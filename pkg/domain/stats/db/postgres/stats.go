package stats

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/jackc/pgx/v4"
	kpool "github.com/openchess/tournhall/pkg/conn/db/postgres/pool"
	"github.com/openchess/tournhall/pkg/domain"
	kerr "github.com/openchess/tournhall/pkg/domain/errors/dberrors/postgres"
	kdbstats "github.com/openchess/tournhall/pkg/domain/stats/db"
	xe "github.com/openchess/tournhall/pkg/errors"
)

type pgStats struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbstats.StatsInterface {
	return &pgStats{pool: pool}
}

func (s *pgStats) Find(ctx context.Context) ([]domain.Stat, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`select "name", "category", "payload", "computed_at" from "system_stats" order by "name"`,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	stats := []domain.Stat{}
	for rows.Next() {
		var stat domain.Stat
		var payload []byte
		if err := rows.Scan(&stat.Name, &stat.Category, &payload, &stat.ComputedAt); err != nil {
			return nil, xe.Wrap(err)
		}
		stat.Payload = json.RawMessage(payload)
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}
	return stats, nil
}

func (s *pgStats) Get(ctx context.Context, name string) (domain.Stat, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return domain.Stat{}, xe.Wrap(err)
	}
	defer conn.Release()

	stat := domain.Stat{Name: name}
	var payload []byte
	if err := conn.QueryRow(
		ctx,
		`select "category", "payload", "computed_at" from "system_stats" where "name" = $1`,
		name,
	).Scan(&stat.Category, &payload, &stat.ComputedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Stat{}, kerr.Missing{Table: "system_stats", Identity: "requested statistic"}
		}
		return domain.Stat{}, xe.Wrap(err)
	}
	stat.Payload = json.RawMessage(payload)
	return stat, nil
}

func (s *pgStats) Compute(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return xe.Wrap(err)
	}
	defer tx.Rollback(ctx)

	for _, compute := range []func(context.Context, kpool.Tx) error{
		s.summary,
		s.teamStats,
		s.playerStats,
		s.matchStats,
		s.hallStats,
	} {
		if err := compute(ctx, tx); err != nil {
			return err
		}
	}

	if err := save(
		ctx, tx, domain.StatLastComputedAt, domain.StatCategoryMeta,
		time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return xe.Wrap(err)
	}
	return nil
}

func save(ctx context.Context, tx kpool.Tx, name string, category string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return xe.Wrap(err)
	}
	if _, err := tx.Exec(
		ctx,
		`
		insert into "system_stats" ("name", "category", "payload", "computed_at")
		values ($1, $2, $3, now())
		on conflict ("name") do update
		set "category" = excluded."category",
		    "payload" = excluded."payload",
		    "computed_at" = excluded."computed_at"
		`,
		name, category, body,
	); err != nil {
		return xe.Wrap(err)
	}
	return nil
}

func (s *pgStats) summary(ctx context.Context, tx kpool.Tx) error {
	summary := map[string]any{}

	for name, query := range map[string]string{
		"total_users":    `select count(*) from "users"`,
		"total_players":  `select count(*) from "players"`,
		"total_coaches":  `select count(*) from "coaches"`,
		"total_arbiters": `select count(*) from "arbiters"`,
		"total_teams":    `select count(*) from "teams"`,
		"total_matches":  `select count(*) from "matches"`,
		"total_halls":    `select count(*) from "halls"`,
	} {
		var count int
		if err := tx.QueryRow(ctx, query).Scan(&count); err != nil {
			return xe.Wrap(err)
		}
		summary[name] = count
	}

	var avgElo *float64
	if err := tx.QueryRow(
		ctx, `select avg("elo_rating") from "players"`,
	).Scan(&avgElo); err != nil {
		return xe.Wrap(err)
	}
	if avgElo == nil {
		summary["average_player_elo"] = 0
	} else {
		summary["average_player_elo"] = math.Round(*avgElo)
	}

	return save(ctx, tx, domain.StatSummary, domain.StatCategorySummary, summary)
}

func (s *pgStats) teamStats(ctx context.Context, tx kpool.Tx) error {
	{
		rows, err := tx.Query(
			ctx,
			`
			select "t"."id", "t"."name", count(distinct "m"."id")
			from "teams" as "t"
			left join "matches" as "m"
				on "t"."id" = "m"."team_white" or "t"."id" = "m"."team_black"
			group by "t"."id", "t"."name"
			order by count(distinct "m"."id") desc, "t"."id"
			`,
		)
		if err != nil {
			return xe.Wrap(err)
		}

		type teamMatches struct {
			TeamId   int    `json:"team_id"`
			TeamName string `json:"team_name"`
			Matches  int    `json:"matches"`
		}
		payload := []teamMatches{}
		for rows.Next() {
			var t teamMatches
			if err := rows.Scan(&t.TeamId, &t.TeamName, &t.Matches); err != nil {
				rows.Close()
				return xe.Wrap(err)
			}
			payload = append(payload, t)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return xe.Wrap(err)
		}
		if err := save(ctx, tx, domain.StatMatchesPerTeam, domain.StatCategoryTeams, payload); err != nil {
			return err
		}
	}

	rows, err := tx.Query(
		ctx,
		`
		select "t"."id", "t"."name",
		       count(*) filter (where
		           ("m"."team_white" = "t"."id" and "a"."result" = 'white wins')
		           or ("m"."team_black" = "t"."id" and "a"."result" = 'black wins')
		       ),
		       count("a"."match_id")
		from "teams" as "t"
		left join "matches" as "m"
			on "t"."id" = "m"."team_white" or "t"."id" = "m"."team_black"
		left join "match_assignments" as "a" on "a"."match_id" = "m"."id"
		group by "t"."id", "t"."name"
		order by "t"."id"
		`,
	)
	if err != nil {
		return xe.Wrap(err)
	}
	defer rows.Close()

	type teamWinRate struct {
		TeamId     int     `json:"team_id"`
		TeamName   string  `json:"team_name"`
		Wins       int     `json:"wins"`
		TotalGames int     `json:"total_games"`
		WinRate    float64 `json:"win_rate"`
	}
	payload := []teamWinRate{}
	for rows.Next() {
		var t teamWinRate
		if err := rows.Scan(&t.TeamId, &t.TeamName, &t.Wins, &t.TotalGames); err != nil {
			return xe.Wrap(err)
		}
		games := t.TotalGames
		if games < 1 {
			games = 1
		}
		t.WinRate = math.Round(float64(t.Wins)/float64(games)*100*100) / 100
		payload = append(payload, t)
	}
	if err := rows.Err(); err != nil {
		return xe.Wrap(err)
	}
	return save(ctx, tx, domain.StatTeamWinRates, domain.StatCategoryTeams, payload)
}

func (s *pgStats) playerStats(ctx context.Context, tx kpool.Tx) error {
	{
		rows, err := tx.Query(
			ctx,
			`
			select "username", "name" || ' ' || "surname", "elo_rating", "nationality"
			from "players"
			order by "elo_rating" desc, "username"
			limit 10
			`,
		)
		if err != nil {
			return xe.Wrap(err)
		}

		type topPlayer struct {
			Username    string `json:"username"`
			Name        string `json:"name"`
			Elo         int    `json:"elo"`
			Nationality string `json:"nationality"`
		}
		payload := []topPlayer{}
		for rows.Next() {
			var p topPlayer
			if err := rows.Scan(&p.Username, &p.Name, &p.Elo, &p.Nationality); err != nil {
				rows.Close()
				return xe.Wrap(err)
			}
			payload = append(payload, p)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return xe.Wrap(err)
		}
		if err := save(ctx, tx, domain.StatTopPlayersByElo, domain.StatCategoryPlayers, payload); err != nil {
			return err
		}
	}

	{
		rows, err := tx.Query(
			ctx,
			`
			select "p"."username", "p"."name" || ' ' || "p"."surname", count("a"."match_id")
			from "players" as "p"
			left join "match_assignments" as "a"
				on "p"."username" = "a"."white_player" or "p"."username" = "a"."black_player"
			group by "p"."username", "p"."name", "p"."surname"
			order by count("a"."match_id") desc, "p"."username"
			limit 10
			`,
		)
		if err != nil {
			return xe.Wrap(err)
		}

		type activePlayer struct {
			Username string `json:"username"`
			Name     string `json:"name"`
			Matches  int    `json:"matches"`
		}
		payload := []activePlayer{}
		for rows.Next() {
			var p activePlayer
			if err := rows.Scan(&p.Username, &p.Name, &p.Matches); err != nil {
				rows.Close()
				return xe.Wrap(err)
			}
			payload = append(payload, p)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return xe.Wrap(err)
		}
		if err := save(ctx, tx, domain.StatMostActivePlayers, domain.StatCategoryPlayers, payload); err != nil {
			return err
		}
	}

	rows, err := tx.Query(
		ctx,
		`
		select "nationality", avg("elo_rating"), count(*)
		from "players"
		group by "nationality"
		having count(*) >= 2
		order by avg("elo_rating") desc
		`,
	)
	if err != nil {
		return xe.Wrap(err)
	}
	defer rows.Close()

	type nationalityElo struct {
		Nationality string  `json:"nationality"`
		AvgElo      float64 `json:"avg_elo"`
		PlayerCount int     `json:"player_count"`
	}
	payload := []nationalityElo{}
	for rows.Next() {
		var n nationalityElo
		if err := rows.Scan(&n.Nationality, &n.AvgElo, &n.PlayerCount); err != nil {
			return xe.Wrap(err)
		}
		n.AvgElo = math.Round(n.AvgElo)
		payload = append(payload, n)
	}
	if err := rows.Err(); err != nil {
		return xe.Wrap(err)
	}
	return save(ctx, tx, domain.StatAvgEloByNationality, domain.StatCategoryPlayers, payload)
}

func (s *pgStats) matchStats(ctx context.Context, tx kpool.Tx) error {
	var total int
	if err := tx.QueryRow(ctx, `select count(*) from "matches"`).Scan(&total); err != nil {
		return xe.Wrap(err)
	}
	if err := save(ctx, tx, domain.StatTotalMatches, domain.StatCategoryMatches, total); err != nil {
		return err
	}

	{
		rows, err := tx.Query(
			ctx,
			`
			select "result", count(*) from "match_assignments"
			where "result" is not null
			group by "result"
			`,
		)
		if err != nil {
			return xe.Wrap(err)
		}

		payload := map[string]int{}
		for rows.Next() {
			var result string
			var count int
			if err := rows.Scan(&result, &count); err != nil {
				rows.Close()
				return xe.Wrap(err)
			}
			payload[result] = count
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return xe.Wrap(err)
		}
		if err := save(ctx, tx, domain.StatMatchesByResult, domain.StatCategoryMatches, payload); err != nil {
			return err
		}
	}

	{
		rows, err := tx.Query(
			ctx,
			`
			select to_char("date", 'YYYY-MM') as "month", count(*)
			from "matches"
			group by "month"
			order by "month" desc
			limit 12
			`,
		)
		if err != nil {
			return xe.Wrap(err)
		}

		type monthCount struct {
			Month string `json:"month"`
			Count int    `json:"count"`
		}
		payload := []monthCount{}
		for rows.Next() {
			var m monthCount
			if err := rows.Scan(&m.Month, &m.Count); err != nil {
				rows.Close()
				return xe.Wrap(err)
			}
			payload = append(payload, m)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return xe.Wrap(err)
		}
		if err := save(ctx, tx, domain.StatMatchesPerMonth, domain.StatCategoryMatches, payload); err != nil {
			return err
		}
	}

	rows, err := tx.Query(
		ctx,
		`
		select "arbiter_username", avg("rating"), count(*)
		from "matches"
		where "rating" is not null
		group by "arbiter_username"
		order by "arbiter_username"
		`,
	)
	if err != nil {
		return xe.Wrap(err)
	}
	defer rows.Close()

	type arbiterRating struct {
		Arbiter    string  `json:"arbiter"`
		AvgRating  float64 `json:"avg_rating"`
		RatedCount int     `json:"rated_count"`
	}
	payload := []arbiterRating{}
	for rows.Next() {
		var a arbiterRating
		if err := rows.Scan(&a.Arbiter, &a.AvgRating, &a.RatedCount); err != nil {
			return xe.Wrap(err)
		}
		a.AvgRating = math.Round(a.AvgRating*100) / 100
		payload = append(payload, a)
	}
	if err := rows.Err(); err != nil {
		return xe.Wrap(err)
	}
	return save(ctx, tx, domain.StatArbiterAvgRatings, domain.StatCategoryArbiters, payload)
}

func (s *pgStats) hallStats(ctx context.Context, tx kpool.Tx) error {
	rows, err := tx.Query(
		ctx,
		`
		select "h"."id", "h"."name", "h"."country", "h"."capacity", count("m"."id")
		from "halls" as "h"
		left join "matches" as "m" on "m"."hall_id" = "h"."id"
		group by "h"."id", "h"."name", "h"."country", "h"."capacity"
		order by count("m"."id") desc, "h"."id"
		`,
	)
	if err != nil {
		return xe.Wrap(err)
	}
	defer rows.Close()

	type hallUsage struct {
		HallId        int    `json:"hall_id"`
		HallName      string `json:"hall_name"`
		Country       string `json:"country"`
		Capacity      int    `json:"capacity"`
		MatchesHosted int    `json:"matches_hosted"`
	}
	payload := []hallUsage{}
	for rows.Next() {
		var h hallUsage
		if err := rows.Scan(&h.HallId, &h.HallName, &h.Country, &h.Capacity, &h.MatchesHosted); err != nil {
			return xe.Wrap(err)
		}
		payload = append(payload, h)
	}
	if err := rows.Err(); err != nil {
		return xe.Wrap(err)
	}
	return save(ctx, tx, domain.StatHallUtilization, domain.StatCategoryHalls, payload)
}
