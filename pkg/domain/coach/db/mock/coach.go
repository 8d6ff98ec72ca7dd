// this package provide "mock" implementation of database for testing.
package mock

import (
	"context"
	"errors"

	"github.com/openchess/tournhall/pkg/domain"
	kdb "github.com/openchess/tournhall/pkg/domain/coach/db"
	dbmock "github.com/openchess/tournhall/pkg/internal/db/mock"
)

type CoachInterface struct {
	Impl struct {
		NewContract func(ctx context.Context, contract domain.CoachContract) error
		Contracts   func(ctx context.Context, coachUsername string) ([]domain.CoachContract, error)
	}

	Calls struct {
		NewContract dbmock.CallLog[domain.CoachContract]
		Contracts   dbmock.CallLog[string]
	}
}

func NewCoachInterface() *CoachInterface {
	return &CoachInterface{}
}

var _ kdb.CoachInterface = &CoachInterface{}

func (m *CoachInterface) NewContract(ctx context.Context, contract domain.CoachContract) error {
	m.Calls.NewContract = append(m.Calls.NewContract, contract)
	if m.Impl.NewContract != nil {
		return m.Impl.NewContract(ctx, contract)
	}
	panic(errors.New("it should not be called"))
}

func (m *CoachInterface) Contracts(ctx context.Context, coachUsername string) ([]domain.CoachContract, error) {
	m.Calls.Contracts = append(m.Calls.Contracts, coachUsername)
	if m.Impl.Contracts != nil {
		return m.Impl.Contracts(ctx, coachUsername)
	}
	panic(errors.New("it should not be called"))
}
