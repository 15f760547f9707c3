package usecase

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isDuplicateKeyError checks if the error is a unique constraint violation
// on a constraint or column whose name contains one of keys.
// PostgreSQL reports the constraint name; SQLite only reports the columns.
func isDuplicateKeyError(err error, keys ...string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505" && containsAny(pgErr.ConstraintName, keys)
	}

	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && containsAny(msg, keys)
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		return pgErr.Code == "23503" && containsAny(pgErr.ConstraintName, []string{constraintName})
	}
	return false
}

func containsAny(s string, keys []string) bool {
	s = strings.ToLower(s)
	for _, key := range keys {
		if strings.Contains(s, strings.ToLower(key)) {
			return true
		}
	}
	return false
}
