package database

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation é o SQLSTATE do PostgreSQL para violação de UNIQUE.
const uniqueViolation = "23505"

// UniqueViolation informa se err é uma violação de UNIQUE e devolve o nome da constraint.
func UniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}
