package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher derives and verifies bcrypt password hashes with a
// configurable cost factor.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher validates the cost factor up front so a
// misconfigured deployment fails at startup, not at first signup.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d outside [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &PasswordHasher{cost: cost}, nil
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches encoded. A mismatch is not an
// error; only a malformed hash or an internal failure is.
func (h *PasswordHasher) Verify(encoded, password string) (bool, error) {
	if encoded == "" {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case err == bcrypt.ErrMismatchedHashAndPassword:
		return false, nil
	default:
		return false, fmt.Errorf("verify password: %w", err)
	}
}
