// this package provide "mock" implementation of database for testing.
package mock

import (
	"context"
	"errors"

	"github.com/openchess/tournhall/pkg/domain"
	dbmock "github.com/openchess/tournhall/pkg/internal/db/mock"
	kdb "github.com/openchess/tournhall/pkg/domain/match/db"
)

type MatchInterface struct {
	Impl struct {
		New       func(ctx context.Context, m domain.NewMatch) (int, error)
		Find      func(ctx context.Context, query domain.MatchFindQuery) ([]domain.Match, error)
		Get       func(ctx context.Context, matchId int) (domain.Match, error)
		Assign    func(ctx context.Context, matchId int, whitePlayer string, blackPlayer string) error
		SetResult func(ctx context.Context, matchId int, arbiterUsername string, result domain.MatchResult) error
		Rate      func(ctx context.Context, matchId int, arbiterUsername string, rating float64) error
		Delete    func(ctx context.Context, matchId int) error
	}

	Calls struct {
		New    dbmock.CallLog[domain.NewMatch]
		Find   dbmock.CallLog[domain.MatchFindQuery]
		Get    dbmock.CallLog[int]
		Assign dbmock.CallLog[struct {
			MatchId     int
			WhitePlayer string
			BlackPlayer string
		}]
		SetResult dbmock.CallLog[struct {
			MatchId         int
			ArbiterUsername string
			Result          domain.MatchResult
		}]
		Rate dbmock.CallLog[struct {
			MatchId         int
			ArbiterUsername string
			Rating          float64
		}]
		Delete dbmock.CallLog[int]
	}
}

func NewMatchInterface() *MatchInterface {
	return &MatchInterface{}
}

var _ kdb.MatchInterface = &MatchInterface{}

func (m *MatchInterface) New(ctx context.Context, spec domain.NewMatch) (int, error) {
	m.Calls.New = append(m.Calls.New, spec)
	if m.Impl.New != nil {
		return m.Impl.New(ctx, spec)
	}
	panic(errors.New("it should not be called"))
}

func (m *MatchInterface) Find(ctx context.Context, query domain.MatchFindQuery) ([]domain.Match, error) {
	m.Calls.Find = append(m.Calls.Find, query)
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, query)
	}
	panic(errors.New("it should not be called"))
}

func (m *MatchInterface) Get(ctx context.Context, matchId int) (domain.Match, error) {
	m.Calls.Get = append(m.Calls.Get, matchId)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, matchId)
	}
	panic(errors.New("it should not be called"))
}

func (m *MatchInterface) Assign(ctx context.Context, matchId int, whitePlayer string, blackPlayer string) error {
	m.Calls.Assign = append(m.Calls.Assign, struct {
		MatchId     int
		WhitePlayer string
		BlackPlayer string
	}{MatchId: matchId, WhitePlayer: whitePlayer, BlackPlayer: blackPlayer})
	if m.Impl.Assign != nil {
		return m.Impl.Assign(ctx, matchId, whitePlayer, blackPlayer)
	}
	panic(errors.New("it should not be called"))
}

func (m *MatchInterface) SetResult(ctx context.Context, matchId int, arbiterUsername string, result domain.MatchResult) error {
	m.Calls.SetResult = append(m.Calls.SetResult, struct {
		MatchId         int
		ArbiterUsername string
		Result          domain.MatchResult
	}{MatchId: matchId, ArbiterUsername: arbiterUsername, Result: result})
	if m.Impl.SetResult != nil {
		return m.Impl.SetResult(ctx, matchId, arbiterUsername, result)
	}
	panic(errors.New("it should not be called"))
}

func (m *MatchInterface) Rate(ctx context.Context, matchId int, arbiterUsername string, rating float64) error {
	m.Calls.Rate = append(m.Calls.Rate, struct {
		MatchId         int
		ArbiterUsername string
		Rating          float64
	}{MatchId: matchId, ArbiterUsername: arbiterUsername, Rating: rating})
	if m.Impl.Rate != nil {
		return m.Impl.Rate(ctx, matchId, arbiterUsername, rating)
	}
	panic(errors.New("it should not be called"))
}

func (m *MatchInterface) Delete(ctx context.Context, matchId int) error {
	m.Calls.Delete = append(m.Calls.Delete, matchId)
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, matchId)
	}
	panic(errors.New("it should not be called"))
}
