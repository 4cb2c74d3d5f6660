package sqlite

import (
	"errors"
	"strings"

	sqlite3 "modernc.org/sqlite"
)

// Extended SQLite result codes for constraint violations. The driver returns
// these on *sqlite3.Error; the string fallback covers paths where the typed
// error is not preserved.
const (
	codeConstraintForeignKey = 787
	codeConstraintPrimaryKey = 1555
	codeConstraintUnique     = 2067
)

// isUniqueViolation reports whether err is a duplicate-key condition: either
// a UNIQUE index (duplicate catalog name) or a composite primary key
// (duplicate association pair).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var se *sqlite3.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case codeConstraintUnique, codeConstraintPrimaryKey:
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation reports whether err means a row is referenced by a
// dependent table (RESTRICT delete) or references a missing parent.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var se *sqlite3.Error
	if errors.As(err, &se) && se.Code() == codeConstraintForeignKey {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
