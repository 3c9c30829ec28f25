package usecase

import (
	"errors"
	"fmt"
)

// ValidationError carries a user-visible message describing the first
// failed input check. The message text is part of the public API; the
// HTTP layer returns it verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError reports a uniqueness collision on a registration field.
// Field holds the colliding attribute name: userName, phone or email.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("account with this %s already exists", e.Field)
}

var (
	// ErrInvalidCredentials covers every authentication failure during
	// login and password change. One error for unknown email, deleted
	// account and wrong password, so responses carry no enumeration
	// signal.
	ErrInvalidCredentials = errors.New("incorrect credentials")

	// ErrAccountNotFound indicates the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountDeleted indicates the account was soft-deleted.
	ErrAccountDeleted = errors.New("account deleted")

	// ErrInvalidOrExpiredResetToken is the single failure kind for reset
	// token redemption. Forged, consumed and expired tokens are
	// indistinguishable to the caller.
	ErrInvalidOrExpiredResetToken = errors.New("Token is invalid or has expired")
)
