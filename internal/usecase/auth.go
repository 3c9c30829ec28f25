package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/articlepost/account-service/internal/core/domain"
	"github.com/articlepost/account-service/internal/core/port"
	"github.com/articlepost/account-service/internal/infra/logger"
	"github.com/articlepost/account-service/internal/infra/security"
	"github.com/articlepost/account-service/internal/repository"
)

// AuthService authenticates accounts and resolves bearer tokens.
type AuthService struct {
	accounts port.AccountRepository
	hasher   *security.PasswordHasher
	tokens   *security.TokenIssuer
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthService(
	accounts port.AccountRepository,
	hasher *security.PasswordHasher,
	tokens *security.TokenIssuer,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		logger:   log,
		now:      time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// LoginResult couples the issued access token with the account.
type LoginResult struct {
	Token   string
	Account domain.Account
}

// Login authenticates by email and password. Unknown email, deleted
// account and wrong password all collapse into ErrInvalidCredentials.
// A successful login atomically bumps loginCount and stamps
// lastLoginDate before the token is issued.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("load account: %w", err)
	}
	if !account.Usable() {
		return LoginResult{}, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(account.PasswordHash, password)
	if err != nil {
		return LoginResult{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.logger.Info("failed login attempt",
			zap.String("email", logger.MaskEmail(email)),
		)
		return LoginResult{}, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.accounts.RecordLogin(ctx, account.ID, now); err != nil {
		return LoginResult{}, fmt.Errorf("record login: %w", err)
	}

	token, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue access token: %w", err)
	}

	account.LoginCount++
	account.LastLoginAt = now
	account.UpdatedAt = now

	return LoginResult{Token: token, Account: account.Sanitized()}, nil
}

// Authenticate resolves a bearer token to its account. Token failures
// propagate the security sentinels so the middleware can distinguish an
// expired token from a forged one; a missing or soft-deleted account
// maps to ErrAccountNotFound / ErrAccountDeleted.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*domain.Account, error) {
	claims, err := s.tokens.Parse(rawToken)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("load account: %w", err)
	}
	if !account.Usable() {
		return nil, ErrAccountDeleted
	}

	return account, nil
}

// CurrentAccount returns the sanitized account for an authenticated id.
func (s *AuthService) CurrentAccount(ctx context.Context, id string) (domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("load account: %w", err)
	}
	if !account.Usable() {
		return domain.Account{}, ErrAccountDeleted
	}
	return account.Sanitized(), nil
}
