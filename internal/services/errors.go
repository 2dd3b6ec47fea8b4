package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ValidationError marks caller mistakes that map to HTTP 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

var ErrItemNotFound = errors.New("Item not found")

var ErrInvalidCredentials = errors.New("Invalid email or password")

// StoreError wraps a failure reported by the database, carrying the Postgres
// detail or hint when one is available so callers can pass it through.
type StoreError struct {
	Err     error
	Details string
}

func (e *StoreError) Error() string { return e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

func storeError(err error) *StoreError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		details := pgErr.Detail
		if details == "" {
			details = pgErr.Hint
		}
		return &StoreError{Err: err, Details: details}
	}
	return &StoreError{Err: err}
}
