package ledger

import "errors"

var (
	// ErrEmailTaken is returned when registering an account with an email
	// that already has one.
	ErrEmailTaken = errors.New("email already registered")
)
