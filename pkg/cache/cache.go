package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	kcfg "github.com/openchess/tournhall/pkg/configs"
	xe "github.com/openchess/tournhall/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// TTL per cached resource.
const (
	TTLStatistics = 30 * time.Second
	TTLHalls      = 300 * time.Second
	TTLTables     = 300 * time.Second
)

// Store is a byte-oriented cache in front of read-heavy endpoints.
type Store interface {
	// Get reads a cached value. The bool is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete drops keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedis connects a Store to redis. Every key is prefixed per config.
func NewRedis(ctx context.Context, conf *kcfg.CacheConfig) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Address(),
		Password: conf.Password(),
		DB:       conf.DB(),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, xe.Wrap(err)
	}
	return &redisStore{client: client, prefix: conf.KeyPrefix()}, nil
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, xe.Wrap(err)
	}
	return value, true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return xe.Wrap(err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = s.prefix + key
	}
	if err := s.client.Del(ctx, prefixed...).Err(); err != nil {
		return xe.Wrap(err)
	}
	return nil
}

// Null is a Store caching nothing, for deployments without redis.
func Null() Store {
	return nullStore{}
}

type nullStore struct{}

func (nullStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (nullStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (nullStore) Delete(ctx context.Context, keys ...string) error {
	return nil
}

// Through reads key from the store, or computes the value with fetch
// and caches it for ttl. Cache failures fall back to fetch.
func Through[T any](
	ctx context.Context,
	store Store,
	key string,
	ttl time.Duration,
	fetch func(context.Context) (T, error),
) (T, error) {
	if cached, ok, err := store.Get(ctx, key); err == nil && ok {
		var value T
		if err := json.Unmarshal(cached, &value); err == nil {
			return value, nil
		}
	}

	value, err := fetch(ctx)
	if err != nil {
		return value, err
	}

	if body, err := json.Marshal(value); err == nil {
		// best effort; the source of truth is the database.
		_ = store.Set(ctx, key, body, ttl)
	}
	return value, nil
}
