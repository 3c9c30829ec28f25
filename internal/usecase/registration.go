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

// RegistrationService handles new account onboarding.
type RegistrationService struct {
	accounts          port.AccountRepository
	images            port.ImageStore
	events            port.EventPublisher
	hasher            *security.PasswordHasher
	tokens            *security.TokenIssuer
	passwordValidator *security.PasswordValidator
	logger            *zap.Logger
	now               func() time.Time
}

// NewRegistrationService constructs a registration service. A nil
// validator selects the default policy chain.
func NewRegistrationService(
	accounts port.AccountRepository,
	images port.ImageStore,
	events port.EventPublisher,
	hasher *security.PasswordHasher,
	tokens *security.TokenIssuer,
	validator *security.PasswordValidator,
	log *zap.Logger,
) *RegistrationService {
	if validator == nil {
		validator = security.DefaultPasswordValidator()
	}
	return &RegistrationService{
		accounts:          accounts,
		images:            images,
		events:            events,
		hasher:            hasher,
		tokens:            tokens,
		passwordValidator: validator,
		logger:            log,
		now:               time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *RegistrationService) WithClock(now func() time.Time) *RegistrationService {
	s.now = now
	return s
}

// RegisterResult couples the issued access token with the stored account.
type RegisterResult struct {
	Token   string
	Account domain.Account
}

// Register validates the profile and password, rejects duplicates, then
// inserts the account and issues an access token. The account is created
// already logged in: LoginCount starts at 1 and LastLoginAt is the
// creation instant. Failures after the insert are compensated by a
// best-effort delete of the partial account and its uploaded image.
func (s *RegistrationService) Register(ctx context.Context, input RegisterInput) (RegisterResult, error) {
	if verr := validateProfile(input); verr != nil {
		return RegisterResult{}, verr
	}
	if err := s.passwordValidator.Validate(input.Password); err != nil {
		return RegisterResult{}, &ValidationError{Message: err.Error()}
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	userName := strings.TrimSpace(input.UserName)
	phone := strings.TrimSpace(input.Phone)

	existing, err := s.accounts.FindConflicting(ctx, email, userName, phone)
	switch {
	case err == nil:
		return RegisterResult{}, &ConflictError{Field: conflictField(existing, userName, phone)}
	case !errors.Is(err, repository.ErrNotFound):
		return RegisterResult{}, fmt.Errorf("check existing account: %w", err)
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	account := domain.Account{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Gender:       domain.Gender(input.Gender),
		UserName:     userName,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
		Status:       domain.AccountStatusActive,
		ProfileImage: input.ProfileImage,
		LoginCount:   1,
		LastLoginAt:  now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accounts.Insert(ctx, account); err != nil {
		s.removeUploadedImage(ctx, input.ProfileImage)
		if errors.Is(err, repository.ErrConflict) {
			// Lost an insert race; re-resolve the colliding field.
			return RegisterResult{}, &ConflictError{Field: s.racedConflictField(ctx, email, userName, phone)}
		}
		return RegisterResult{}, fmt.Errorf("insert account: %w", err)
	}

	token, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		s.compensateInsert(ctx, account, input.ProfileImage)
		return RegisterResult{}, fmt.Errorf("issue access token: %w", err)
	}

	s.publishRegistered(ctx, account)

	return RegisterResult{Token: token, Account: account.Sanitized()}, nil
}

// conflictField resolves which unique attribute collided, checked in a
// fixed order: userName, then phone, then email.
func conflictField(existing *domain.Account, userName, phone string) string {
	switch {
	case existing.UserName == userName:
		return "userName"
	case existing.Phone == phone:
		return "phone"
	default:
		return "email"
	}
}

func (s *RegistrationService) racedConflictField(ctx context.Context, email, userName, phone string) string {
	existing, err := s.accounts.FindConflicting(ctx, email, userName, phone)
	if err != nil {
		return "email"
	}
	return conflictField(existing, userName, phone)
}

// compensateInsert undoes a partially completed registration. Failures
// here are logged, never surfaced; the caller already has the real error.
func (s *RegistrationService) compensateInsert(ctx context.Context, account domain.Account, image domain.ProfileImage) {
	if err := s.accounts.Delete(ctx, account.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("delete account after failed registration",
			zap.String("account_id", account.ID),
			zap.Error(err),
		)
	}
	s.removeUploadedImage(ctx, image)
}

func (s *RegistrationService) removeUploadedImage(ctx context.Context, image domain.ProfileImage) {
	if image.Empty() || s.images == nil {
		return
	}
	if err := s.images.Delete(ctx, image.Key); err != nil {
		s.logger.Warn("delete uploaded profile image",
			zap.String("key", image.Key),
			zap.Error(err),
		)
	}
}

func (s *RegistrationService) publishRegistered(ctx context.Context, account domain.Account) {
	if s.events == nil {
		return
	}
	event := domain.AccountRegisteredEvent{
		EventID:      uuid.NewString(),
		AccountID:    account.ID,
		UserName:     account.UserName,
		Email:        account.Email,
		Status:       string(account.Status),
		RegisteredAt: account.CreatedAt,
	}
	if err := s.events.PublishAccountRegistered(ctx, event); err != nil {
		s.logger.Warn("publish account registered event",
			zap.String("account_id", account.ID),
			zap.String("email", logger.MaskEmail(account.Email)),
			zap.Error(err),
		)
	}
}
