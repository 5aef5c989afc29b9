package entity

import "errors"

var (
	// ErrNotFound: id/owner mismatch or absent row. Repositories return it
	// whenever a scoped mutation touches zero rows.
	ErrNotFound = errors.New("not found")

	// ErrEmailAlreadyExists maps the unique constraint on users.email.
	ErrEmailAlreadyExists = errors.New("email already exists")
)
