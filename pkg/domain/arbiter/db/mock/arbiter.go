// this package provide "mock" implementation of database for testing.
package mock

import (
	"context"
	"errors"

	"github.com/openchess/tournhall/pkg/domain"
	kdb "github.com/openchess/tournhall/pkg/domain/arbiter/db"
	dbmock "github.com/openchess/tournhall/pkg/internal/db/mock"
)

type ArbiterInterface struct {
	Impl struct {
		Summary func(ctx context.Context, username string) (domain.ArbiterSummary, error)
	}

	Calls struct {
		Summary dbmock.CallLog[string]
	}
}

func NewArbiterInterface() *ArbiterInterface {
	return &ArbiterInterface{}
}

var _ kdb.ArbiterInterface = &ArbiterInterface{}

func (m *ArbiterInterface) Summary(ctx context.Context, username string) (domain.ArbiterSummary, error) {
	m.Calls.Summary = append(m.Calls.Summary, username)
	if m.Impl.Summary != nil {
		return m.Impl.Summary(ctx, username)
	}
	panic(errors.New("it should not be called"))
}
