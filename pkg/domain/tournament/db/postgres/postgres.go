package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	kpool "github.com/openchess/tournhall/pkg/conn/db/postgres/pool"
	karbiter "github.com/openchess/tournhall/pkg/domain/arbiter/db"
	kpgarbiter "github.com/openchess/tournhall/pkg/domain/arbiter/db/postgres"
	kaudit "github.com/openchess/tournhall/pkg/domain/audit/db"
	kpgaudit "github.com/openchess/tournhall/pkg/domain/audit/db/postgres"
	kcoach "github.com/openchess/tournhall/pkg/domain/coach/db"
	kpgcoach "github.com/openchess/tournhall/pkg/domain/coach/db/postgres"
	khall "github.com/openchess/tournhall/pkg/domain/hall/db"
	kpghall "github.com/openchess/tournhall/pkg/domain/hall/db/postgres"
	kmatch "github.com/openchess/tournhall/pkg/domain/match/db"
	kpgmatch "github.com/openchess/tournhall/pkg/domain/match/db/postgres"
	kplayer "github.com/openchess/tournhall/pkg/domain/player/db"
	kpgplayer "github.com/openchess/tournhall/pkg/domain/player/db/postgres"
	kschema "github.com/openchess/tournhall/pkg/domain/schema/db"
	kpgschema "github.com/openchess/tournhall/pkg/domain/schema/db/postgres"
	kstats "github.com/openchess/tournhall/pkg/domain/stats/db"
	kpgstats "github.com/openchess/tournhall/pkg/domain/stats/db/postgres"
	dbInterface "github.com/openchess/tournhall/pkg/domain/tournament/db"
	kuser "github.com/openchess/tournhall/pkg/domain/user/db"
	kpguser "github.com/openchess/tournhall/pkg/domain/user/db/postgres"
	xe "github.com/openchess/tournhall/pkg/errors"
)

type tournDBPostgres struct {
	pool    *pgxpool.Pool
	user    kuser.UserInterface
	hall    khall.HallInterface
	match   kmatch.MatchInterface
	coach   kcoach.CoachInterface
	player  kplayer.PlayerInterface
	arbiter karbiter.ArbiterInterface
	stats   kstats.StatsInterface
	audit   kaudit.AuditInterface
	schema  kschema.SchemaInterface
}

type Config struct {
	SchemaRepository string
}

type Option func(*Config) *Config

func WithSchemaRepository(repository string) Option {
	return func(c *Config) *Config {
		c.SchemaRepository = repository
		return c
	}
}

func New(
	ctx context.Context,
	url string,
	options ...Option,
) (dbInterface.TournamentDatabase, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	c := Config{}
	for _, option := range options {
		c = *option(&c)
	}

	p := kpool.Wrap(pool)

	var schema kschema.SchemaInterface = kpgschema.Null()
	if c.SchemaRepository != "" {
		schema = kpgschema.New(p, c.SchemaRepository)
	}

	user := kpguser.New(p)

	return &tournDBPostgres{
		pool:    pool,
		user:    user,
		hall:    kpghall.New(p),
		match:   kpgmatch.New(p),
		coach:   kpgcoach.New(p),
		player:  kpgplayer.New(p, user),
		arbiter: kpgarbiter.New(p, user),
		stats:   kpgstats.New(p),
		audit:   kpgaudit.New(p),
		schema:  schema,
	}, nil
}

func (t *tournDBPostgres) User() kuser.UserInterface {
	return t.user
}

func (t *tournDBPostgres) Hall() khall.HallInterface {
	return t.hall
}

func (t *tournDBPostgres) Match() kmatch.MatchInterface {
	return t.match
}

func (t *tournDBPostgres) Coach() kcoach.CoachInterface {
	return t.coach
}

func (t *tournDBPostgres) Player() kplayer.PlayerInterface {
	return t.player
}

func (t *tournDBPostgres) Arbiter() karbiter.ArbiterInterface {
	return t.arbiter
}

func (t *tournDBPostgres) Stats() kstats.StatsInterface {
	return t.stats
}

func (t *tournDBPostgres) Audit() kaudit.AuditInterface {
	return t.audit
}

func (t *tournDBPostgres) Schema() kschema.SchemaInterface {
	return t.schema
}

func (t *tournDBPostgres) Ping(ctx context.Context) error {
	if err := t.pool.Ping(ctx); err != nil {
		return xe.Wrap(err)
	}
	return nil
}

func (t *tournDBPostgres) Close() error {
	t.pool.Close()
	return nil
}
