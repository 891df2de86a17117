package repository

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code raised when an insert
// breaks a unique constraint.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err stems from a unique-constraint
// violation. Services use this to convert write-time identifier races
// into their domain conflict outcome instead of a generic failure.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// UniqueConstraint returns the name of the violated unique constraint,
// or an empty string. Lets callers tell an identifier race apart from a
// broken admission invariant on the same insert.
func UniqueConstraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint
	}
	return ""
}
