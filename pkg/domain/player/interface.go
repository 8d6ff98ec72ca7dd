package player

import (
	"github.com/openchess/tournhall/pkg/domain/player/db"
)

type Interface interface {
	Database() db.PlayerInterface
}

type impl struct {
	db db.PlayerInterface
}

func New(dbp db.PlayerInterface) Interface {
	return &impl{db: dbp}
}

func (p *impl) Database() db.PlayerInterface {
	return p.db
}
