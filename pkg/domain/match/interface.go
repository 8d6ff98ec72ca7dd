package match

import (
	"github.com/openchess/tournhall/pkg/domain/match/db"
)

type Interface interface {
	Database() db.MatchInterface
}

type impl struct {
	db db.MatchInterface
}

func New(dbm db.MatchInterface) Interface {
	return &impl{db: dbm}
}

func (m *impl) Database() db.MatchInterface {
	return m.db
}
