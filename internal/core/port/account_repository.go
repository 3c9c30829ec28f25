package port

import (
	"context"
	"time"

	"github.com/articlepost/account-service/internal/core/domain"
)

// AccountRepository exposes persistence behavior for accounts.
//
// Every update method targets a single document and must be applied
// atomically by the backing store; RecordLogin in particular combines a
// counter increment with field replacement so concurrent logins never
// lose updates.
type AccountRepository interface {
	Insert(ctx context.Context, account domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// FindConflicting returns an existing account matching any of the
	// unique fields, or repository.ErrNotFound when none collide.
	FindConflicting(ctx context.Context, email, userName, phone string) (*domain.Account, error)

	// GetByResetDigest returns the account holding the digest with a
	// reset window still open at the supplied instant.
	GetByResetDigest(ctx context.Context, digest string, now time.Time) (*domain.Account, error)

	// RecordLogin increments loginCount and stamps lastLoginDate/updatedAt.
	RecordLogin(ctx context.Context, id string, at time.Time) error

	UpdatePassword(ctx context.Context, id string, passwordHash string, changedAt time.Time) error
	SetResetToken(ctx context.Context, id string, digest string, expiresAt, at time.Time) error
	ClearResetToken(ctx context.Context, id string, at time.Time) error

	// UpdatePasswordAndClearReset replaces the hash and removes the reset
	// fields in one atomic update, consuming the outstanding token.
	UpdatePasswordAndClearReset(ctx context.Context, id string, passwordHash string, at time.Time) error

	UpdateProfileImage(ctx context.Context, id string, image domain.ProfileImage, at time.Time) error
	Delete(ctx context.Context, id string) error
}
