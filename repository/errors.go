package repository

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// Sentinel errors returned by repositories. Handlers map these to HTTP
// status codes; raw driver errors never leave this package unclassified.
var (
	// ErrNotFound is returned when a record does not exist or is owned by a
	// different user. The two cases are deliberately indistinguishable so an
	// id probe cannot reveal other users' records.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a uniqueness constraint would be violated.
	ErrDuplicate = errors.New("record already exists")
)

// isUniqueViolation reports whether err is a SQLite unique-constraint error.
// Uniqueness is pre-checked before inserts, but a concurrent insert can still
// hit the index; that race surfaces here and is translated to ErrDuplicate.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
