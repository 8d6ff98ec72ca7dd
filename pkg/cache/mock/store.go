// this package provide "mock" implementation of cache for testing.
package mock

import (
	"context"
	"errors"
	"time"

	"github.com/openchess/tournhall/pkg/cache"
	dbmock "github.com/openchess/tournhall/pkg/internal/db/mock"
)

type Store struct {
	Impl struct {
		Get    func(ctx context.Context, key string) ([]byte, bool, error)
		Set    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
		Delete func(ctx context.Context, keys ...string) error
	}

	Calls struct {
		Get dbmock.CallLog[string]
		Set dbmock.CallLog[struct {
			Key   string
			Value []byte
			TTL   time.Duration
		}]
		Delete dbmock.CallLog[[]string]
	}
}

func NewStore() *Store {
	return &Store{}
}

var _ cache.Store = &Store{}

func (m *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.Calls.Get = append(m.Calls.Get, key)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, key)
	}
	panic(errors.New("it should not be called"))
}

func (m *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.Calls.Set = append(m.Calls.Set, struct {
		Key   string
		Value []byte
		TTL   time.Duration
	}{Key: key, Value: value, TTL: ttl})
	if m.Impl.Set != nil {
		return m.Impl.Set(ctx, key, value, ttl)
	}
	panic(errors.New("it should not be called"))
}

func (m *Store) Delete(ctx context.Context, keys ...string) error {
	m.Calls.Delete = append(m.Calls.Delete, keys)
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, keys...)
	}
	panic(errors.New("it should not be called"))
}
