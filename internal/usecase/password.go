package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/articlepost/account-service/internal/core/domain"
	"github.com/articlepost/account-service/internal/core/port"
	"github.com/articlepost/account-service/internal/infra/logger"
	"github.com/articlepost/account-service/internal/infra/security"
	"github.com/articlepost/account-service/internal/repository"
)

const defaultResetTokenTTL = 10 * time.Minute

// PasswordService covers the credential lifecycle: authenticated
// password change, forgot-password token issuance and token redemption.
type PasswordService struct {
	accounts          port.AccountRepository
	mailer            port.Mailer
	events            port.EventPublisher
	hasher            *security.PasswordHasher
	passwordValidator *security.PasswordValidator
	serverURL         string
	resetTTL          time.Duration
	logger            *zap.Logger
	now               func() time.Time
}

func NewPasswordService(
	accounts port.AccountRepository,
	mailer port.Mailer,
	events port.EventPublisher,
	hasher *security.PasswordHasher,
	validator *security.PasswordValidator,
	serverURL string,
	resetTTL time.Duration,
	log *zap.Logger,
) *PasswordService {
	if validator == nil {
		validator = security.DefaultPasswordValidator()
	}
	if resetTTL <= 0 {
		resetTTL = defaultResetTokenTTL
	}
	return &PasswordService{
		accounts:          accounts,
		mailer:            mailer,
		events:            events,
		hasher:            hasher,
		passwordValidator: validator,
		serverURL:         strings.TrimRight(serverURL, "/"),
		resetTTL:          resetTTL,
		logger:            log,
		now:               time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *PasswordService) WithClock(now func() time.Time) *PasswordService {
	s.now = now
	return s
}

// WithTTL overrides the reset token lifetime, for tests.
func (s *PasswordService) WithTTL(ttl time.Duration) *PasswordService {
	s.resetTTL = ttl
	return s
}

// ChangePasswordInput is the authenticated password change payload.
type ChangePasswordInput struct {
	CurrentPassword    string
	NewPassword        string
	ConfirmNewPassword string
}

// ChangePassword verifies the current password and replaces it. Input
// checks happen in a fixed order with fixed messages; the current
// password is verified only after the new password passes the policy.
func (s *PasswordService) ChangePassword(ctx context.Context, account *domain.Account, input ChangePasswordInput) error {
	switch {
	case input.CurrentPassword == "":
		return &ValidationError{Message: "Please Enter current password."}
	case input.NewPassword == "":
		return &ValidationError{Message: "Please Enter New Password."}
	case input.ConfirmNewPassword == "":
		return &ValidationError{Message: "Please Enter confirm new password."}
	case input.NewPassword != input.ConfirmNewPassword:
		return &ValidationError{Message: "The 'New Password' and 'Confirm New Password' are not match"}
	}

	if err := s.passwordValidator.Validate(input.NewPassword); err != nil {
		return &ValidationError{Message: err.Error()}
	}

	ok, err := s.hasher.Verify(account.PasswordHash, input.CurrentPassword)
	if err != nil {
		return fmt.Errorf("verify current password: %w", err)
	}
	if !ok {
		return ErrInvalidCredentials
	}

	passwordHash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	now := s.now().UTC()
	if err := s.accounts.UpdatePassword(ctx, account.ID, passwordHash, now); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.publishPasswordChanged(ctx, account.ID, now, "self")
	return nil
}

// ForgotPassword issues a reset token and mails the reset link. Only
// the token digest is persisted. When mail delivery fails the token is
// cleared again so an undeliverable token cannot linger in the store.
func (s *PasswordService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("load account: %w", err)
	}

	rawToken, digest, err := security.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.resetTTL)
	if err := s.accounts.SetResetToken(ctx, account.ID, digest, expiresAt, now); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/user/resetpassword/%s", s.serverURL, rawToken)
	mailErr := s.mailer.SendPasswordReset(ctx, port.PasswordResetEmail{
		To:        account.Email,
		Name:      account.Name,
		ResetURL:  resetURL,
		ExpiresAt: expiresAt,
	})
	if mailErr != nil {
		if clearErr := s.accounts.ClearResetToken(ctx, account.ID, s.now().UTC()); clearErr != nil {
			s.logger.Error("clear reset token after mail failure",
				zap.String("account_id", account.ID),
				zap.Error(clearErr),
			)
		}
		return fmt.Errorf("send password reset mail: %w", mailErr)
	}

	s.publishResetRequested(ctx, account, now, expiresAt)
	return nil
}

// ResetPassword redeems a reset token. The token is single use: the
// password update and the reset field removal happen in one atomic
// store operation, so a second redemption finds nothing.
func (s *PasswordService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	digest := security.DigestToken(rawToken)

	account, err := s.accounts.GetByResetDigest(ctx, digest, s.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOrExpiredResetToken
		}
		return fmt.Errorf("find account by reset token: %w", err)
	}

	if err := s.passwordValidator.Validate(newPassword); err != nil {
		return &ValidationError{Message: err.Error()}
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	now := s.now().UTC()
	if err := s.accounts.UpdatePasswordAndClearReset(ctx, account.ID, passwordHash, now); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.publishPasswordChanged(ctx, account.ID, now, "reset")
	return nil
}

func (s *PasswordService) publishPasswordChanged(ctx context.Context, accountID string, at time.Time, source string) {
	if s.events == nil {
		return
	}
	event := domain.PasswordChangedEvent{
		EventID:   uuid.NewString(),
		AccountID: accountID,
		ChangedAt: at,
		ChangedBy: accountID,
		Source:    source,
	}
	if err := s.events.PublishPasswordChanged(ctx, event); err != nil {
		s.logger.Warn("publish password changed event",
			zap.String("account_id", accountID),
			zap.Error(err),
		)
	}
}

func (s *PasswordService) publishResetRequested(ctx context.Context, account *domain.Account, at, expiresAt time.Time) {
	if s.events == nil {
		return
	}
	event := domain.PasswordResetRequestedEvent{
		EventID:           uuid.NewString(),
		AccountID:         account.ID,
		RequestedAt:       at,
		MaskedDestination: logger.MaskEmail(account.Email),
		ExpiresAt:         expiresAt,
	}
	if err := s.events.PublishPasswordResetRequested(ctx, event); err != nil {
		s.logger.Warn("publish password reset requested event",
			zap.String("account_id", account.ID),
			zap.Error(err),
		)
	}
}
