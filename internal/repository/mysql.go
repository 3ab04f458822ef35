package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// isDuplicateEntry reports whether err is a MySQL duplicate-key
// violation (error 1062), used to map unique-constraint failures onto
// domain sentinels.
func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// isForeignKeyViolation reports whether err is MySQL error 1451, a
// delete refused because child rows still reference the target.
func isForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1451
}
