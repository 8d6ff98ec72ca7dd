package db

import (
	"context"

	"github.com/openchess/tournhall/pkg/domain"
)

type AuditInterface interface {
	// Record stores one audit event.
	Record(ctx context.Context, event domain.AuditEvent) error

	// Find lists stored events of a user, newest first.
	// An empty username does not narrow.
	Find(ctx context.Context, username string) ([]domain.AuditEvent, error)
}
