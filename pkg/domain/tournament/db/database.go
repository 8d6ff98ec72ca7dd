package db

import (
	"context"

	karbiter "github.com/openchess/tournhall/pkg/domain/arbiter/db"
	kaudit "github.com/openchess/tournhall/pkg/domain/audit/db"
	kcoach "github.com/openchess/tournhall/pkg/domain/coach/db"
	khall "github.com/openchess/tournhall/pkg/domain/hall/db"
	kmatch "github.com/openchess/tournhall/pkg/domain/match/db"
	kplayer "github.com/openchess/tournhall/pkg/domain/player/db"
	kschema "github.com/openchess/tournhall/pkg/domain/schema/db"
	kstats "github.com/openchess/tournhall/pkg/domain/stats/db"
	kuser "github.com/openchess/tournhall/pkg/domain/user/db"
)

type TournamentDatabase interface {
	User() kuser.UserInterface
	Hall() khall.HallInterface
	Match() kmatch.MatchInterface
	Coach() kcoach.CoachInterface
	Player() kplayer.PlayerInterface
	Arbiter() karbiter.ArbiterInterface
	Stats() kstats.StatsInterface
	Audit() kaudit.AuditInterface
	Schema() kschema.SchemaInterface

	// Ping verifies the database is reachable.
	Ping(ctx context.Context) error

	Close() error
}
