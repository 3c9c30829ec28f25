package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/articlepost/account-service/internal/core/domain"
	"github.com/articlepost/account-service/internal/core/port"
	"github.com/articlepost/account-service/internal/repository"
)

const profileImagePrefix = "profile-images"

// ProfileService manages profile image uploads and attachment.
type ProfileService struct {
	accounts port.AccountRepository
	images   port.ImageStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewProfileService(accounts port.AccountRepository, images port.ImageStore, log *zap.Logger) *ProfileService {
	return &ProfileService{
		accounts: accounts,
		images:   images,
		logger:   log,
		now:      time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *ProfileService) WithClock(now func() time.Time) *ProfileService {
	s.now = now
	return s
}

// UploadImage stores the raw image bytes under a fresh object key and
// returns the reference to attach to an account.
func (s *ProfileService) UploadImage(ctx context.Context, originalName, contentType string, data []byte) (domain.ProfileImage, error) {
	key := fmt.Sprintf("%s/%s%s", profileImagePrefix, uuid.NewString(), strings.ToLower(filepath.Ext(originalName)))

	location, err := s.images.Upload(ctx, key, contentType, data)
	if err != nil {
		return domain.ProfileImage{}, fmt.Errorf("upload profile image: %w", err)
	}

	return domain.ProfileImage{
		Key:          key,
		Location:     location,
		OriginalName: originalName,
	}, nil
}

// UpdateProfileImage attaches the uploaded image to the account. Last
// write wins; there is no merge. When the account update fails the
// already uploaded object is removed again, best effort.
func (s *ProfileService) UpdateProfileImage(ctx context.Context, accountID string, image domain.ProfileImage) error {
	if err := s.accounts.UpdateProfileImage(ctx, accountID, image, s.now().UTC()); err != nil {
		s.RemoveUploadedImage(ctx, image)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("update profile image: %w", err)
	}
	return nil
}

// RemoveUploadedImage deletes an object that could not be attached.
// Failures are logged only; the caller already has the primary error.
func (s *ProfileService) RemoveUploadedImage(ctx context.Context, image domain.ProfileImage) {
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
