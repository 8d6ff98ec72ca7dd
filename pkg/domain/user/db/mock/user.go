// this package provide "mock" implementation of database for testing.
package mock

import (
	"context"
	"errors"

	"github.com/openchess/tournhall/pkg/domain"
	dbmock "github.com/openchess/tournhall/pkg/internal/db/mock"
	kdb "github.com/openchess/tournhall/pkg/domain/user/db"
)

type UserInterface struct {
	Impl struct {
		New        func(ctx context.Context, user domain.NewUser) error
		Get        func(ctx context.Context, username string) (domain.User, error)
		GetPlayer  func(ctx context.Context, username string) (domain.PlayerProfile, error)
		GetCoach   func(ctx context.Context, username string) (domain.CoachProfile, error)
		GetArbiter func(ctx context.Context, username string) (domain.ArbiterProfile, error)
	}

	Calls struct {
		New        dbmock.CallLog[domain.NewUser]
		Get        dbmock.CallLog[string]
		GetPlayer  dbmock.CallLog[string]
		GetCoach   dbmock.CallLog[string]
		GetArbiter dbmock.CallLog[string]
	}
}

func NewUserInterface() *UserInterface {
	return &UserInterface{}
}

var _ kdb.UserInterface = &UserInterface{}

func (m *UserInterface) New(ctx context.Context, user domain.NewUser) error {
	m.Calls.New = append(m.Calls.New, user)
	if m.Impl.New != nil {
		return m.Impl.New(ctx, user)
	}
	panic(errors.New("it should not be called"))
}

func (m *UserInterface) Get(ctx context.Context, username string) (domain.User, error) {
	m.Calls.Get = append(m.Calls.Get, username)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, username)
	}
	panic(errors.New("it should not be called"))
}

func (m *UserInterface) GetPlayer(ctx context.Context, username string) (domain.PlayerProfile, error) {
	m.Calls.GetPlayer = append(m.Calls.GetPlayer, username)
	if m.Impl.GetPlayer != nil {
		return m.Impl.GetPlayer(ctx, username)
	}
	panic(errors.New("it should not be called"))
}

func (m *UserInterface) GetCoach(ctx context.Context, username string) (domain.CoachProfile, error) {
	m.Calls.GetCoach = append(m.Calls.GetCoach, username)
	if m.Impl.GetCoach != nil {
		return m.Impl.GetCoach(ctx, username)
	}
	panic(errors.New("it should not be called"))
}

func (m *UserInterface) GetArbiter(ctx context.Context, username string) (domain.ArbiterProfile, error) {
	m.Calls.GetArbiter = append(m.Calls.GetArbiter, username)
	if m.Impl.GetArbiter != nil {
		return m.Impl.GetArbiter(ctx, username)
	}
	panic(errors.New("it should not be called"))
}
