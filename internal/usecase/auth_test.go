package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/articlepost/account-service/internal/core/domain"
	"github.com/articlepost/account-service/internal/infra/security"
)

func activeAccount(t *testing.T, hasher *security.PasswordHasher, password string) *domain.Account {
	t.Helper()
	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	return &domain.Account{
		ID:           "acc-1",
		Name:         "Jane Doe",
		UserName:     "jane.doe",
		Email:        "jane@example.com",
		Phone:        "9876543210",
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       domain.AccountStatusActive,
		LoginCount:   4,
	}
}

func TestLoginSuccess(t *testing.T) {
	hasher := newTestHasher(t)
	issuer := newTestIssuer(t)
	account := activeAccount(t, hasher, "Password1!")
	repo := &mockAccountRepository{getByEmailResult: account}
	fixed := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	svc := NewAuthService(repo, hasher, issuer, zap.NewNop()).
		WithClock(func() time.Time { return fixed })

	result, err := svc.Login(context.Background(), "  Jane@Example.com ", "Password1!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if repo.getByEmailLast != "jane@example.com" {
		t.Errorf("lookup email = %q", repo.getByEmailLast)
	}
	if repo.recordLoginCalls != 1 || repo.recordLoginID != "acc-1" || !repo.recordLoginAt.Equal(fixed) {
		t.Error("RecordLogin not called with clock instant")
	}
	if result.Account.LoginCount != 5 {
		t.Errorf("LoginCount = %d, want 5", result.Account.LoginCount)
	}
	if result.Account.PasswordHash != "" {
		t.Error("account not sanitized")
	}

	claims, err := issuer.Parse(result.Token)
	if err != nil {
		t.Fatalf("Parse issued token: %v", err)
	}
	if claims.AccountID != "acc-1" || claims.Email != "jane@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginFailuresCollapse(t *testing.T) {
	hasher := newTestHasher(t)
	account := activeAccount(t, hasher, "Password1!")
	deleted := *account
	deleted.Status = domain.AccountStatusDeleted

	cases := []struct {
		name     string
		repo     *mockAccountRepository
		email    string
		password string
	}{
		{"unknown email", &mockAccountRepository{}, "nobody@example.com", "Password1!"},
		{"wrong password", &mockAccountRepository{getByEmailResult: account}, "jane@example.com", "WrongPass1!"},
		{"deleted account", &mockAccountRepository{getByEmailResult: &deleted}, "jane@example.com", "Password1!"},
		{"empty password", &mockAccountRepository{getByEmailResult: account}, "jane@example.com", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewAuthService(tc.repo, hasher, newTestIssuer(t), zap.NewNop())
			_, err := svc.Login(context.Background(), tc.email, tc.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("err = %v, want ErrInvalidCredentials", err)
			}
			if tc.repo.recordLoginCalls != 0 {
				t.Error("login must not be recorded on failure")
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	hasher := newTestHasher(t)
	issuer := newTestIssuer(t)
	account := activeAccount(t, hasher, "Password1!")

	token, err := issuer.Issue(account.ID, account.Email)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	t.Run("resolves account", func(t *testing.T) {
		repo := &mockAccountRepository{getByIDResult: account}
		svc := NewAuthService(repo, hasher, issuer, zap.NewNop())
		got, err := svc.Authenticate(context.Background(), token)
		if err != nil {
			t.Fatalf("Authenticate: %v", err)
		}
		if got.ID != account.ID {
			t.Errorf("ID = %q", got.ID)
		}
	})

	t.Run("missing account", func(t *testing.T) {
		svc := NewAuthService(&mockAccountRepository{}, hasher, issuer, zap.NewNop())
		if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, ErrAccountNotFound) {
			t.Fatalf("err = %v, want ErrAccountNotFound", err)
		}
	})

	t.Run("deleted account", func(t *testing.T) {
		deleted := *account
		deleted.Status = domain.AccountStatusDeleted
		svc := NewAuthService(&mockAccountRepository{getByIDResult: &deleted}, hasher, issuer, zap.NewNop())
		if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, ErrAccountDeleted) {
			t.Fatalf("err = %v, want ErrAccountDeleted", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		past, err := security.NewTokenIssuer("unit-test-secret", "account-service", time.Minute)
		if err != nil {
			t.Fatalf("NewTokenIssuer: %v", err)
		}
		past.WithClock(func() time.Time { return time.Now().Add(-time.Hour) })
		staleToken, err := past.Issue(account.ID, account.Email)
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}

		svc := NewAuthService(&mockAccountRepository{getByIDResult: account}, hasher, issuer, zap.NewNop())
		if _, err := svc.Authenticate(context.Background(), staleToken); !errors.Is(err, security.ErrTokenExpired) {
			t.Fatalf("err = %v, want ErrTokenExpired", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := NewAuthService(&mockAccountRepository{getByIDResult: account}, hasher, issuer, zap.NewNop())
		if _, err := svc.Authenticate(context.Background(), "junk"); !errors.Is(err, security.ErrTokenInvalid) {
			t.Fatalf("err = %v, want ErrTokenInvalid", err)
		}
	})
}

func TestCurrentAccountSanitizes(t *testing.T) {
	hasher := newTestHasher(t)
	account := activeAccount(t, hasher, "Password1!")
	digest := "reset-digest"
	expires := time.Now().Add(time.Minute)
	account.ResetTokenDigest = &digest
	account.ResetTokenExpiresAt = &expires

	svc := NewAuthService(&mockAccountRepository{getByIDResult: account}, hasher, newTestIssuer(t), zap.NewNop())
	got, err := svc.CurrentAccount(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("CurrentAccount: %v", err)
	}
	if got.PasswordHash != "" || got.ResetTokenDigest != nil || got.ResetTokenExpiresAt != nil {
		t.Error("sensitive fields must be stripped")
	}
}
