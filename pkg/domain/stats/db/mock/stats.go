// this package provide "mock" implementation of database for testing.
package mock

import (
	"context"
	"errors"

	"github.com/openchess/tournhall/pkg/domain"
	dbmock "github.com/openchess/tournhall/pkg/internal/db/mock"
	kdb "github.com/openchess/tournhall/pkg/domain/stats/db"
)

type StatsInterface struct {
	Impl struct {
		Compute func(ctx context.Context) error
		Find    func(ctx context.Context) ([]domain.Stat, error)
		Get     func(ctx context.Context, name string) (domain.Stat, error)
	}

	Calls struct {
		Compute dbmock.CallLog[struct{}]
		Find    dbmock.CallLog[struct{}]
		Get     dbmock.CallLog[string]
	}
}

func NewStatsInterface() *StatsInterface {
	return &StatsInterface{}
}

var _ kdb.StatsInterface = &StatsInterface{}

func (m *StatsInterface) Compute(ctx context.Context) error {
	m.Calls.Compute = append(m.Calls.Compute, struct{}{})
	if m.Impl.Compute != nil {
		return m.Impl.Compute(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (m *StatsInterface) Find(ctx context.Context) ([]domain.Stat, error) {
	m.Calls.Find = append(m.Calls.Find, struct{}{})
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (m *StatsInterface) Get(ctx context.Context, name string) (domain.Stat, error) {
	m.Calls.Get = append(m.Calls.Get, name)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, name)
	}
	panic(errors.New("it should not be called"))
}
