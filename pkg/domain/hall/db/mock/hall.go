// this package provide "mock" implementation of database for testing.
package mock

import (
	"context"
	"errors"

	"github.com/openchess/tournhall/pkg/domain"
	kdb "github.com/openchess/tournhall/pkg/domain/hall/db"
	dbmock "github.com/openchess/tournhall/pkg/internal/db/mock"
)

type HallInterface struct {
	Impl struct {
		Find   func(ctx context.Context) ([]domain.Hall, error)
		Get    func(ctx context.Context, hallId int) (domain.Hall, error)
		Rename func(ctx context.Context, hallId int, name string) error
		Tables func(ctx context.Context, hallId int) ([]domain.MatchTable, error)
	}

	Calls struct {
		Find   dbmock.CallLog[struct{}]
		Get    dbmock.CallLog[int]
		Rename dbmock.CallLog[struct {
			HallId int
			Name   string
		}]
		Tables dbmock.CallLog[int]
	}
}

func NewHallInterface() *HallInterface {
	return &HallInterface{}
}

var _ kdb.HallInterface = &HallInterface{}

func (m *HallInterface) Find(ctx context.Context) ([]domain.Hall, error) {
	m.Calls.Find = append(m.Calls.Find, struct{}{})
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (m *HallInterface) Get(ctx context.Context, hallId int) (domain.Hall, error) {
	m.Calls.Get = append(m.Calls.Get, hallId)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, hallId)
	}
	panic(errors.New("it should not be called"))
}

func (m *HallInterface) Rename(ctx context.Context, hallId int, name string) error {
	m.Calls.Rename = append(m.Calls.Rename, struct {
		HallId int
		Name   string
	}{HallId: hallId, Name: name})
	if m.Impl.Rename != nil {
		return m.Impl.Rename(ctx, hallId, name)
	}
	panic(errors.New("it should not be called"))
}

func (m *HallInterface) Tables(ctx context.Context, hallId int) ([]domain.MatchTable, error) {
	m.Calls.Tables = append(m.Calls.Tables, hallId)
	if m.Impl.Tables != nil {
		return m.Impl.Tables(ctx, hallId)
	}
	panic(errors.New("it should not be called"))
}
