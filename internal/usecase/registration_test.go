package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/articlepost/account-service/internal/core/domain"
	"github.com/articlepost/account-service/internal/infra/security"
	"github.com/articlepost/account-service/internal/repository"
)

func newTestHasher(t *testing.T) *security.PasswordHasher {
	t.Helper()
	hasher, err := security.NewPasswordHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewPasswordHasher: %v", err)
	}
	return hasher
}

func newTestIssuer(t *testing.T) *security.TokenIssuer {
	t.Helper()
	issuer, err := security.NewTokenIssuer("unit-test-secret", "account-service", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	return issuer
}

func newRegistrationService(repo *mockAccountRepository, images *mockImageStore, events *mockPublisher, t *testing.T) *RegistrationService {
	return NewRegistrationService(repo, images, events, newTestHasher(t), newTestIssuer(t), nil, zap.NewNop())
}

func TestRegisterSuccess(t *testing.T) {
	repo := &mockAccountRepository{}
	events := &mockPublisher{}
	fixed := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc := newRegistrationService(repo, &mockImageStore{}, events, t).
		WithClock(func() time.Time { return fixed })

	in := validRegisterInput()
	in.Email = "Jane@Example.COM"
	result, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if result.Token == "" {
		t.Error("expected access token")
	}
	if result.Account.PasswordHash != "" {
		t.Error("returned account must not carry the password hash")
	}
	if result.Account.Email != "jane@example.com" {
		t.Errorf("email not normalized: %q", result.Account.Email)
	}

	if repo.insertCalls != 1 {
		t.Fatalf("insertCalls = %d", repo.insertCalls)
	}
	stored := repo.inserted
	if stored.PasswordHash == "" || stored.PasswordHash == in.Password {
		t.Error("stored password must be hashed")
	}
	if stored.Status != domain.AccountStatusActive {
		t.Errorf("Status = %q", stored.Status)
	}
	if stored.Role != domain.RoleUser {
		t.Errorf("Role = %q", stored.Role)
	}
	if stored.LoginCount != 1 {
		t.Errorf("LoginCount = %d, want 1", stored.LoginCount)
	}
	if !stored.LastLoginAt.Equal(fixed) || !stored.CreatedAt.Equal(fixed) {
		t.Error("timestamps not taken from clock")
	}

	if events.registeredCalls != 1 {
		t.Errorf("registeredCalls = %d", events.registeredCalls)
	}
	if events.lastRegistered.AccountID != stored.ID {
		t.Error("event account id mismatch")
	}
}

func TestRegisterValidationMessagePassesThrough(t *testing.T) {
	repo := &mockAccountRepository{}
	svc := newRegistrationService(repo, &mockImageStore{}, &mockPublisher{}, t)

	in := validRegisterInput()
	in.Password = "password1!"
	_, err := svc.Register(context.Background(), in)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if verr.Message != "Password must contain an upper case letter" {
		t.Errorf("message = %q", verr.Message)
	}
	if repo.insertCalls != 0 {
		t.Error("no insert on validation failure")
	}
}

func TestRegisterConflictTieBreak(t *testing.T) {
	in := validRegisterInput()

	cases := []struct {
		name     string
		existing domain.Account
		want     string
	}{
		{"userName wins", domain.Account{UserName: in.UserName, Phone: in.Phone, Email: in.Email}, "userName"},
		{"phone before email", domain.Account{UserName: "other", Phone: in.Phone, Email: in.Email}, "phone"},
		{"email last", domain.Account{UserName: "other", Phone: "0000000000", Email: in.Email}, "email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockAccountRepository{findConflictingResult: &tc.existing}
			svc := newRegistrationService(repo, &mockImageStore{}, &mockPublisher{}, t)

			_, err := svc.Register(context.Background(), in)
			var cerr *ConflictError
			if !errors.As(err, &cerr) {
				t.Fatalf("err = %v, want ConflictError", err)
			}
			if cerr.Field != tc.want {
				t.Errorf("Field = %q, want %q", cerr.Field, tc.want)
			}
		})
	}
}

func TestRegisterInsertRaceMapsToConflict(t *testing.T) {
	repo := &mockAccountRepository{insertErr: repository.ErrConflict}
	images := &mockImageStore{}
	svc := newRegistrationService(repo, images, &mockPublisher{}, t)

	in := validRegisterInput()
	in.ProfileImage = domain.ProfileImage{Key: "profile-images/abc.png", Location: "https://bucket/abc.png"}
	_, err := svc.Register(context.Background(), in)

	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if images.deleteCalls != 1 || images.deletedKey != "profile-images/abc.png" {
		t.Error("uploaded image not cleaned up after lost insert race")
	}
}

func TestRegisterInsertFailureCleansUpImage(t *testing.T) {
	repo := &mockAccountRepository{insertErr: errors.New("write concern timeout")}
	images := &mockImageStore{}
	svc := newRegistrationService(repo, images, &mockPublisher{}, t)

	in := validRegisterInput()
	in.ProfileImage = domain.ProfileImage{Key: "profile-images/abc.png", Location: "https://bucket/abc.png"}
	_, err := svc.Register(context.Background(), in)
	if err == nil {
		t.Fatal("expected error")
	}
	if images.deleteCalls != 1 {
		t.Error("uploaded image not cleaned up")
	}
}

func TestRegisterPublishFailureIsNotFatal(t *testing.T) {
	repo := &mockAccountRepository{}
	events := &mockPublisher{registeredErr: errors.New("broker down")}
	svc := newRegistrationService(repo, &mockImageStore{}, events, t)

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}
}
