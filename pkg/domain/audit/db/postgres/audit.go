package audit

import (
	"context"
	"encoding/json"

	kpool "github.com/openchess/tournhall/pkg/conn/db/postgres/pool"
	"github.com/openchess/tournhall/pkg/domain"
	kdbaudit "github.com/openchess/tournhall/pkg/domain/audit/db"
	xe "github.com/openchess/tournhall/pkg/errors"
)

type pgAudit struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbaudit.AuditInterface {
	return &pgAudit{pool: pool}
}

func (a *pgAudit) Record(ctx context.Context, event domain.AuditEvent) error {
	details, err := json.Marshal(event.Details)
	if err != nil {
		return xe.Wrap(err)
	}

	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return xe.Wrap(err)
	}
	defer conn.Release()

	if _, err := conn.Exec(
		ctx,
		`
		insert into "audit_logs"
			("event_id", "event_type", "username", "details", "ip_address", "user_agent", "timestamp", "source")
		values ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
		event.EventId, event.EventType, event.Username, details,
		event.IpAddress, event.UserAgent, event.Timestamp, event.Source,
	); err != nil {
		return xe.Wrap(err)
	}
	return nil
}

func (a *pgAudit) Find(ctx context.Context, username string) ([]domain.AuditEvent, error) {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "event_id", "event_type", "username", "details", "ip_address", "user_agent", "timestamp", "source"
		from "audit_logs"
		where $1 = '' or "username" = $1
		order by "timestamp" desc
		`,
		username,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	events := []domain.AuditEvent{}
	for rows.Next() {
		var event domain.AuditEvent
		var details []byte
		if err := rows.Scan(
			&event.EventId, &event.EventType, &event.Username, &details,
			&event.IpAddress, &event.UserAgent, &event.Timestamp, &event.Source,
		); err != nil {
			return nil, xe.Wrap(err)
		}
		if len(details) != 0 {
			if err := json.Unmarshal(details, &event.Details); err != nil {
				return nil, xe.Wrap(err)
			}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}
	return events, nil
}
