package stats

import (
	"github.com/openchess/tournhall/pkg/domain/stats/db"
)

type Interface interface {
	Database() db.StatsInterface
}

type impl struct {
	db db.StatsInterface
}

func New(dbs db.StatsInterface) Interface {
	return &impl{db: dbs}
}

func (s *impl) Database() db.StatsInterface {
	return s.db
}
