package hall

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	kpool "github.com/openchess/tournhall/pkg/conn/db/postgres/pool"
	"github.com/openchess/tournhall/pkg/domain"
	kerr "github.com/openchess/tournhall/pkg/domain/errors/dberrors/postgres"
	kdbhall "github.com/openchess/tournhall/pkg/domain/hall/db"
	xe "github.com/openchess/tournhall/pkg/errors"
)

type pgHall struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbhall.HallInterface {
	return &pgHall{pool: pool}
}

func (h *pgHall) Find(ctx context.Context) ([]domain.Hall, error) {
	conn, err := h.pool.Acquire(ctx)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`select "id", "name", "country", "capacity" from "halls" order by "id"`,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	halls := []domain.Hall{}
	for rows.Next() {
		var hall domain.Hall
		if err := rows.Scan(&hall.Id, &hall.Name, &hall.Country, &hall.Capacity); err != nil {
			return nil, xe.Wrap(err)
		}
		halls = append(halls, hall)
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}
	return halls, nil
}

func (h *pgHall) Get(ctx context.Context, hallId int) (domain.Hall, error) {
	conn, err := h.pool.Acquire(ctx)
	if err != nil {
		return domain.Hall{}, xe.Wrap(err)
	}
	defer conn.Release()

	var hall domain.Hall
	if err := conn.QueryRow(
		ctx,
		`select "id", "name", "country", "capacity" from "halls" where "id" = $1`,
		hallId,
	).Scan(&hall.Id, &hall.Name, &hall.Country, &hall.Capacity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Hall{}, kerr.Missing{Table: "halls", Identity: "requested hall"}
		}
		return domain.Hall{}, xe.Wrap(err)
	}
	return hall, nil
}

func (h *pgHall) Rename(ctx context.Context, hallId int, name string) error {
	tx, err := h.pool.Begin(ctx)
	if err != nil {
		return xe.Wrap(err)
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(
		ctx,
		`update "halls" set "name" = $1 where "id" = $2`,
		name, hallId,
	)
	if err != nil {
		return xe.Wrap(err)
	}
	if cmd.RowsAffected() == 0 {
		return kerr.Missing{Table: "halls", Identity: "requested hall"}
	}

	if err := tx.Commit(ctx); err != nil {
		return xe.Wrap(err)
	}
	return nil
}

func (h *pgHall) Tables(ctx context.Context, hallId int) ([]domain.MatchTable, error) {
	conn, err := h.pool.Acquire(ctx)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`select "id", "hall_id" from "match_tables" where "hall_id" = $1 order by "id"`,
		hallId,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	tables := []domain.MatchTable{}
	for rows.Next() {
		var t domain.MatchTable
		if err := rows.Scan(&t.Id, &t.HallId); err != nil {
			return nil, xe.Wrap(err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}
	return tables, nil
}
