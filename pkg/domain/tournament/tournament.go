package tournament

import (
	"context"

	kcfg "github.com/openchess/tournhall/pkg/configs"
	"github.com/openchess/tournhall/pkg/domain/arbiter"
	"github.com/openchess/tournhall/pkg/domain/audit"
	"github.com/openchess/tournhall/pkg/domain/coach"
	"github.com/openchess/tournhall/pkg/domain/hall"
	"github.com/openchess/tournhall/pkg/domain/match"
	"github.com/openchess/tournhall/pkg/domain/player"
	"github.com/openchess/tournhall/pkg/domain/schema"
	"github.com/openchess/tournhall/pkg/domain/stats"
	"github.com/openchess/tournhall/pkg/domain/tournament/db/postgres"
	"github.com/openchess/tournhall/pkg/domain/user"
)

// Tournament bundles every domain interface of the system.
type Tournament interface {
	Config() *kcfg.TournConfig

	User() user.Interface
	Hall() hall.Interface
	Match() match.Interface
	Coach() coach.Interface
	Player() player.Interface
	Arbiter() arbiter.Interface

	Stats() stats.Interface
	Audit() audit.Interface
	Schema() schema.Interface

	// Ping verifies the backing database is reachable.
	Ping(ctx context.Context) error

	Close() error
}

type tournament struct {
	config *kcfg.TournConfig

	user    user.Interface
	hall    hall.Interface
	match   match.Interface
	coach   coach.Interface
	player  player.Interface
	arbiter arbiter.Interface

	stats  stats.Interface
	audit  audit.Interface
	schema schema.Interface

	ping  func(ctx context.Context) error
	close func() error
}

type Option func(*_options)

type _options struct {
	pg []postgres.Option
}

func WithSchemaRepository(repository string) Option {
	return func(o *_options) {
		o.pg = append(o.pg, postgres.WithSchemaRepository(repository))
	}
}

// New connects to postgres and builds the domain interfaces on it.
func New(
	ctx context.Context,
	config *kcfg.TournConfig,
	options ...Option,
) (Tournament, error) {
	opt := &_options{}
	for _, o := range options {
		o(opt)
	}

	pg, err := postgres.New(ctx, config.Database(), opt.pg...)
	if err != nil {
		return nil, err
	}

	return &tournament{
		config: config,

		user:    user.New(pg.User()),
		hall:    hall.New(pg.Hall()),
		match:   match.New(pg.Match()),
		coach:   coach.New(pg.Coach()),
		player:  player.New(pg.Player()),
		arbiter: arbiter.New(pg.Arbiter()),

		stats:  stats.New(pg.Stats()),
		audit:  audit.New(pg.Audit()),
		schema: schema.New(pg.Schema()),

		ping:  pg.Ping,
		close: pg.Close,
	}, nil
}

func (t *tournament) Config() *kcfg.TournConfig {
	return t.config
}

func (t *tournament) User() user.Interface {
	return t.user
}

func (t *tournament) Hall() hall.Interface {
	return t.hall
}

func (t *tournament) Match() match.Interface {
	return t.match
}

func (t *tournament) Coach() coach.Interface {
	return t.coach
}

func (t *tournament) Player() player.Interface {
	return t.player
}

func (t *tournament) Arbiter() arbiter.Interface {
	return t.arbiter
}

func (t *tournament) Stats() stats.Interface {
	return t.stats
}

func (t *tournament) Audit() audit.Interface {
	return t.audit
}

func (t *tournament) Schema() schema.Interface {
	return t.schema
}

func (t *tournament) Ping(ctx context.Context) error {
	return t.ping(ctx)
}

func (t *tournament) Close() error {
	return t.close()
}
