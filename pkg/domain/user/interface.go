package user

import (
	"github.com/openchess/tournhall/pkg/domain/user/db"
)

type Interface interface {
	Database() db.UserInterface
}

type impl struct {
	db db.UserInterface
}

func New(dbu db.UserInterface) Interface {
	return &impl{db: dbu}
}

func (u *impl) Database() db.UserInterface {
	return u.db
}
