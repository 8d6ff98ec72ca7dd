package audit

import (
	"github.com/openchess/tournhall/pkg/domain/audit/db"
)

type Interface interface {
	Database() db.AuditInterface
}

type impl struct {
	db db.AuditInterface
}

func New(dba db.AuditInterface) Interface {
	return &impl{db: dba}
}

func (a *impl) Database() db.AuditInterface {
	return a.db
}
