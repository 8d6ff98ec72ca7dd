package coach

import (
	"github.com/openchess/tournhall/pkg/domain/coach/db"
)

type Interface interface {
	Database() db.CoachInterface
}

type impl struct {
	db db.CoachInterface
}

func New(dbc db.CoachInterface) Interface {
	return &impl{db: dbc}
}

func (c *impl) Database() db.CoachInterface {
	return c.db
}
