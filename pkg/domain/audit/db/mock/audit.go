package mock

import (
	"context"
	"errors"

	"github.com/openchess/tournhall/pkg/domain"
	kdbaudit "github.com/openchess/tournhall/pkg/domain/audit/db"
	dbmock "github.com/openchess/tournhall/pkg/internal/db/mock"
)

type AuditInterface struct {
	Impl struct {
		Record func(ctx context.Context, event domain.AuditEvent) error
		Find   func(ctx context.Context, username string) ([]domain.AuditEvent, error)
	}

	Calls struct {
		Record dbmock.CallLog[domain.AuditEvent]
		Find   dbmock.CallLog[string]
	}
}

func NewAuditInterface() *AuditInterface {
	return &AuditInterface{}
}

var _ kdbaudit.AuditInterface = &AuditInterface{}

func (m *AuditInterface) Record(ctx context.Context, event domain.AuditEvent) error {
	m.Calls.Record = append(m.Calls.Record, event)
	if m.Impl.Record != nil {
		return m.Impl.Record(ctx, event)
	}
	panic(errors.New("it should not be called"))
}

func (m *AuditInterface) Find(ctx context.Context, username string) ([]domain.AuditEvent, error) {
	m.Calls.Find = append(m.Calls.Find, username)
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, username)
	}
	panic(errors.New("it should not be called"))
}
