// this package provide "mock" implementation of database for testing.
package mock

import (
	"context"
	"errors"

	"github.com/openchess/tournhall/pkg/domain"
	dbmock "github.com/openchess/tournhall/pkg/internal/db/mock"
	kdb "github.com/openchess/tournhall/pkg/domain/player/db"
)

type PlayerInterface struct {
	Impl struct {
		Summary   func(ctx context.Context, username string) (domain.PlayerSummary, error)
		Opponents func(ctx context.Context, username string) (domain.OpponentReport, error)
	}

	Calls struct {
		Summary   dbmock.CallLog[string]
		Opponents dbmock.CallLog[string]
	}
}

func NewPlayerInterface() *PlayerInterface {
	return &PlayerInterface{}
}

var _ kdb.PlayerInterface = &PlayerInterface{}

func (m *PlayerInterface) Summary(ctx context.Context, username string) (domain.PlayerSummary, error) {
	m.Calls.Summary = append(m.Calls.Summary, username)
	if m.Impl.Summary != nil {
		return m.Impl.Summary(ctx, username)
	}
	panic(errors.New("it should not be called"))
}

func (m *PlayerInterface) Opponents(ctx context.Context, username string) (domain.OpponentReport, error) {
	m.Calls.Opponents = append(m.Calls.Opponents, username)
	if m.Impl.Opponents != nil {
		return m.Impl.Opponents(ctx, username)
	}
	panic(errors.New("it should not be called"))
}
