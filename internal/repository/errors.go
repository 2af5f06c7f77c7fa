// Package repository contains MySQL data access for outdoors, reservations,
// users and refresh tokens. Repositories return the sentinels below for
// expected misses; everything else is a raw driver error that the service
// layer wraps as a storage failure.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrOutdoorNotFound     = errors.New("outdoor not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailExists         = errors.New("email already exists")
	ErrRefreshInvalid      = errors.New("refresh token invalid or expired")
)

// MySQL server error numbers the service layer cares about.
const (
	mysqlDuplicateEntry  = 1062
	mysqlNoReferencedRow = 1452
)

// IsDuplicate reports a unique key violation.
func IsDuplicate(err error) bool { return mysqlErrNumber(err) == mysqlDuplicateEntry }

// IsForeignKeyViolation reports an insert or update pointing at a missing parent row.
func IsForeignKeyViolation(err error) bool { return mysqlErrNumber(err) == mysqlNoReferencedRow }

func mysqlErrNumber(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}
