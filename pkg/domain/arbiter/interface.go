package arbiter

import (
	"github.com/openchess/tournhall/pkg/domain/arbiter/db"
)

type Interface interface {
	Database() db.ArbiterInterface
}

type impl struct {
	db db.ArbiterInterface
}

func New(dba db.ArbiterInterface) Interface {
	return &impl{db: dba}
}

func (a *impl) Database() db.ArbiterInterface {
	return a.db
}
