package port

import (
	"context"
	"time"
)

// PasswordResetEmail carries everything a mailer needs to deliver reset
// instructions. ResetURL embeds the raw one-time token; it must never be
// persisted by the mailer.
type PasswordResetEmail struct {
	To        string
	Name      string
	ResetURL  string
	ExpiresAt time.Time
}

// Mailer delivers transactional email. Failure is an ordinary error the
// caller handles; the forgot-password flow compensates by clearing the
// reset fields when delivery fails.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email PasswordResetEmail) error
}
