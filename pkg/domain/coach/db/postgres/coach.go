package coach

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	kpool "github.com/openchess/tournhall/pkg/conn/db/postgres/pool"
	"github.com/openchess/tournhall/pkg/domain"
	kdbcoach "github.com/openchess/tournhall/pkg/domain/coach/db"
	kerr "github.com/openchess/tournhall/pkg/domain/errors/dberrors/postgres"
	xe "github.com/openchess/tournhall/pkg/errors"
)

type pgCoach struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbcoach.CoachInterface {
	return &pgCoach{pool: pool}
}

func (c *pgCoach) NewContract(ctx context.Context, contract domain.CoachContract) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return xe.Wrap(err)
	}
	defer tx.Rollback(ctx)

	// lock the coach row to serialize concurrent signings.
	if err := tx.QueryRow(
		ctx,
		`select "username" from "coaches" where "username" = $1 for update`,
		contract.CoachUsername,
	).Scan(nil); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kerr.Missing{Table: "coaches", Identity: contract.CoachUsername}
		}
		return xe.Wrap(err)
	}

	rows, err := tx.Query(
		ctx,
		`
		select "coach_username", "team_id", "start_date", "end_date"
		from "coach_contracts"
		where "coach_username" = $1
		`,
		contract.CoachUsername,
	)
	if err != nil {
		return xe.Wrap(err)
	}
	held := []domain.CoachContract{}
	for rows.Next() {
		var row domain.CoachContract
		if err := rows.Scan(&row.CoachUsername, &row.TeamId, &row.StartDate, &row.EndDate); err != nil {
			rows.Close()
			return xe.Wrap(err)
		}
		held = append(held, row)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return xe.Wrap(err)
	}
	for _, h := range held {
		if contract.Overlaps(h) {
			return domain.ErrContractOverlap
		}
	}

	if _, err := tx.Exec(
		ctx,
		`
		insert into "coach_contracts" ("coach_username", "team_id", "start_date", "end_date")
		values ($1, $2, $3, $4)
		`,
		contract.CoachUsername, contract.TeamId, contract.StartDate, contract.EndDate,
	); err != nil {
		if kerr.IsForeignKeyViolation(err) {
			return kerr.Missing{Table: "teams", Identity: "requested team"}
		}
		return xe.Wrap(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return xe.Wrap(err)
	}
	return nil
}

func (c *pgCoach) Contracts(ctx context.Context, coachUsername string) ([]domain.CoachContract, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "coach_username", "team_id", "start_date", "end_date"
		from "coach_contracts"
		where "coach_username" = $1
		order by "start_date"
		`,
		coachUsername,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	contracts := []domain.CoachContract{}
	for rows.Next() {
		var contract domain.CoachContract
		if err := rows.Scan(
			&contract.CoachUsername, &contract.TeamId,
			&contract.StartDate, &contract.EndDate,
		); err != nil {
			return nil, xe.Wrap(err)
		}
		contracts = append(contracts, contract)
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}
	return contracts, nil
}
