package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/openchess/tournhall/pkg/domain"
)

// requested data is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}
func (m Missing) Unwrap() error {
	return domain.ErrMissing
}

// a row with the same identity exists already.
type Duplication struct {
	Table    string
	Identity string
}

var _ error = Duplication{}

func (d Duplication) Error() string {
	return fmt.Sprintf("%s exists in %s already", d.Identity, d.Table)
}
func (d Duplication) Unwrap() error {
	return domain.ErrAlreadyExists
}

// IsUniqueViolation tells whether err is a postgres unique_violation,
// optionally on a specific constraint.
func IsUniqueViolation(err error, constraint string) bool {
	pgerr := new(pgconn.PgError)
	if !errors.As(err, &pgerr) || pgerr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgerr.ConstraintName == constraint
}

// IsForeignKeyViolation tells whether err is a postgres foreign_key_violation.
func IsForeignKeyViolation(err error) bool {
	pgerr := new(pgconn.PgError)
	return errors.As(err, &pgerr) && pgerr.Code == pgerrcode.ForeignKeyViolation
}

// IsCheckViolation tells whether err is a postgres check_violation.
func IsCheckViolation(err error) bool {
	pgerr := new(pgconn.PgError)
	return errors.As(err, &pgerr) && pgerr.Code == pgerrcode.CheckViolation
}
