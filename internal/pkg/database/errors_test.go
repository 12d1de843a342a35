package database_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"gocatalog/internal/pkg/database"
)

func TestUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "orders_isbn_key"})

	constraint, ok := database.UniqueViolation(err)
	assert.True(t, ok)
	assert.Equal(t, "orders_isbn_key", constraint)

	_, ok = database.UniqueViolation(&pq.Error{Code: "23503"})
	assert.False(t, ok)

	_, ok = database.UniqueViolation(errors.New("plain"))
	assert.False(t, ok)
}
