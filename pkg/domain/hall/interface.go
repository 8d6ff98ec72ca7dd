package hall

import (
	"github.com/openchess/tournhall/pkg/domain/hall/db"
)

type Interface interface {
	Database() db.HallInterface
}

type impl struct {
	db db.HallInterface
}

func New(dbh db.HallInterface) Interface {
	return &impl{db: dbh}
}

func (h *impl) Database() db.HallInterface {
	return h.db
}
