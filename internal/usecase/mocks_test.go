package usecase

import (
	"context"
	"time"

	"github.com/articlepost/account-service/internal/core/domain"
	"github.com/articlepost/account-service/internal/core/port"
	"github.com/articlepost/account-service/internal/repository"
)

type mockAccountRepository struct {
	insertErr   error
	insertCalls int
	inserted    domain.Account

	getByIDResult *domain.Account
	getByIDErr    error
	getByIDLastID string

	getByEmailResult *domain.Account
	getByEmailErr    error
	getByEmailCalls  int
	getByEmailLast   string

	findConflictingResult *domain.Account
	findConflictingErr    error
	findConflictingCalls  int

	getByDigestResult *domain.Account
	getByDigestErr    error
	getByDigestLast   string
	getByDigestNow    time.Time

	recordLoginErr   error
	recordLoginCalls int
	recordLoginID    string
	recordLoginAt    time.Time

	updatePasswordErr   error
	updatePasswordCalls int
	updatePasswordID    string
	updatePasswordHash  string
	updatePasswordAt    time.Time

	setResetErr       error
	setResetCalls     int
	setResetDigest    string
	setResetExpiresAt time.Time

	clearResetErr   error
	clearResetCalls int

	updateAndClearErr   error
	updateAndClearCalls int
	updateAndClearID    string
	updateAndClearHash  string

	updateImageErr   error
	updateImageCalls int
	updateImageID    string
	updatedImage     domain.ProfileImage

	deleteErr   error
	deleteCalls int
	deletedID   string
}

func (m *mockAccountRepository) Insert(_ context.Context, account domain.Account) error {
	m.insertCalls++
	m.inserted = account
	return m.insertErr
}

func (m *mockAccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	m.getByIDLastID = id
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	if m.getByIDResult == nil {
		return nil, repository.ErrNotFound
	}
	copy := *m.getByIDResult
	return &copy, nil
}

func (m *mockAccountRepository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	m.getByEmailCalls++
	m.getByEmailLast = email
	if m.getByEmailErr != nil {
		return nil, m.getByEmailErr
	}
	if m.getByEmailResult == nil {
		return nil, repository.ErrNotFound
	}
	copy := *m.getByEmailResult
	return &copy, nil
}

func (m *mockAccountRepository) FindConflicting(_ context.Context, _, _, _ string) (*domain.Account, error) {
	m.findConflictingCalls++
	if m.findConflictingErr != nil {
		return nil, m.findConflictingErr
	}
	if m.findConflictingResult == nil {
		return nil, repository.ErrNotFound
	}
	copy := *m.findConflictingResult
	return &copy, nil
}

func (m *mockAccountRepository) GetByResetDigest(_ context.Context, digest string, now time.Time) (*domain.Account, error) {
	m.getByDigestLast = digest
	m.getByDigestNow = now
	if m.getByDigestErr != nil {
		return nil, m.getByDigestErr
	}
	if m.getByDigestResult == nil {
		return nil, repository.ErrNotFound
	}
	copy := *m.getByDigestResult
	return &copy, nil
}

func (m *mockAccountRepository) RecordLogin(_ context.Context, id string, at time.Time) error {
	m.recordLoginCalls++
	m.recordLoginID = id
	m.recordLoginAt = at
	return m.recordLoginErr
}

func (m *mockAccountRepository) UpdatePassword(_ context.Context, id, passwordHash string, changedAt time.Time) error {
	m.updatePasswordCalls++
	m.updatePasswordID = id
	m.updatePasswordHash = passwordHash
	m.updatePasswordAt = changedAt
	return m.updatePasswordErr
}

func (m *mockAccountRepository) SetResetToken(_ context.Context, _ string, digest string, expiresAt, _ time.Time) error {
	m.setResetCalls++
	m.setResetDigest = digest
	m.setResetExpiresAt = expiresAt
	return m.setResetErr
}

func (m *mockAccountRepository) ClearResetToken(_ context.Context, _ string, _ time.Time) error {
	m.clearResetCalls++
	return m.clearResetErr
}

func (m *mockAccountRepository) UpdatePasswordAndClearReset(_ context.Context, id, passwordHash string, _ time.Time) error {
	m.updateAndClearCalls++
	m.updateAndClearID = id
	m.updateAndClearHash = passwordHash
	return m.updateAndClearErr
}

func (m *mockAccountRepository) UpdateProfileImage(_ context.Context, id string, image domain.ProfileImage, _ time.Time) error {
	m.updateImageCalls++
	m.updateImageID = id
	m.updatedImage = image
	return m.updateImageErr
}

func (m *mockAccountRepository) Delete(_ context.Context, id string) error {
	m.deleteCalls++
	m.deletedID = id
	return m.deleteErr
}

var _ port.AccountRepository = (*mockAccountRepository)(nil)

type mockMailer struct {
	sendErr   error
	sendCalls int
	lastEmail port.PasswordResetEmail
}

func (m *mockMailer) SendPasswordReset(_ context.Context, email port.PasswordResetEmail) error {
	m.sendCalls++
	m.lastEmail = email
	return m.sendErr
}

type mockImageStore struct {
	uploadErr      error
	uploadCalls    int
	uploadedKey    string
	uploadedType   string
	uploadedData   []byte
	uploadLocation string

	deleteErr   error
	deleteCalls int
	deletedKey  string
}

func (m *mockImageStore) Upload(_ context.Context, key, contentType string, data []byte) (string, error) {
	m.uploadCalls++
	m.uploadedKey = key
	m.uploadedType = contentType
	m.uploadedData = data
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	if m.uploadLocation != "" {
		return m.uploadLocation, nil
	}
	return "https://bucket.example.com/" + key, nil
}

func (m *mockImageStore) Delete(_ context.Context, key string) error {
	m.deleteCalls++
	m.deletedKey = key
	return m.deleteErr
}

type mockPublisher struct {
	registeredErr      error
	registeredCalls    int
	lastRegistered     domain.AccountRegisteredEvent
	passwordErr        error
	passwordCalls      int
	lastPassword       domain.PasswordChangedEvent
	resetRequestedErr  error
	resetRequestedInfo domain.PasswordResetRequestedEvent
	resetRequested     int
}

func (m *mockPublisher) PublishAccountRegistered(_ context.Context, event domain.AccountRegisteredEvent) error {
	m.registeredCalls++
	m.lastRegistered = event
	return m.registeredErr
}

func (m *mockPublisher) PublishPasswordChanged(_ context.Context, event domain.PasswordChangedEvent) error {
	m.passwordCalls++
	m.lastPassword = event
	return m.passwordErr
}

func (m *mockPublisher) PublishPasswordResetRequested(_ context.Context, event domain.PasswordResetRequestedEvent) error {
	m.resetRequested++
	m.resetRequestedInfo = event
	return m.resetRequestedErr
}
