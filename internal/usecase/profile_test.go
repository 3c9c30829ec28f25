package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/articlepost/account-service/internal/core/domain"
	"github.com/articlepost/account-service/internal/repository"
)

func TestUploadImage(t *testing.T) {
	images := &mockImageStore{uploadLocation: "https://bucket.example.com/obj"}
	svc := NewProfileService(&mockAccountRepository{}, images, zap.NewNop())

	image, err := svc.UploadImage(context.Background(), "Avatar.PNG", "image/png", []byte{0x89, 0x50})
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}

	if !strings.HasPrefix(image.Key, "profile-images/") || !strings.HasSuffix(image.Key, ".png") {
		t.Errorf("Key = %q", image.Key)
	}
	if image.Location != "https://bucket.example.com/obj" {
		t.Errorf("Location = %q", image.Location)
	}
	if image.OriginalName != "Avatar.PNG" {
		t.Errorf("OriginalName = %q", image.OriginalName)
	}
	if images.uploadedType != "image/png" {
		t.Errorf("content type = %q", images.uploadedType)
	}
}

func TestUpdateProfileImage(t *testing.T) {
	repo := &mockAccountRepository{}
	svc := NewProfileService(repo, &mockImageStore{}, zap.NewNop())
	image := domain.ProfileImage{Key: "profile-images/x.png", Location: "https://bucket/x.png"}

	if err := svc.UpdateProfileImage(context.Background(), "acc-1", image); err != nil {
		t.Fatalf("UpdateProfileImage: %v", err)
	}
	if repo.updateImageCalls != 1 || repo.updateImageID != "acc-1" {
		t.Fatal("repository not updated")
	}
	if repo.updatedImage != image {
		t.Errorf("stored image = %+v", repo.updatedImage)
	}
}

func TestUpdateProfileImageFailureDeletesObject(t *testing.T) {
	repo := &mockAccountRepository{updateImageErr: errors.New("connection reset")}
	images := &mockImageStore{}
	svc := NewProfileService(repo, images, zap.NewNop())
	image := domain.ProfileImage{Key: "profile-images/x.png", Location: "https://bucket/x.png"}

	if err := svc.UpdateProfileImage(context.Background(), "acc-1", image); err == nil {
		t.Fatal("expected error")
	}
	if images.deleteCalls != 1 || images.deletedKey != image.Key {
		t.Error("uploaded object not removed")
	}
}

func TestUpdateProfileImageMissingAccount(t *testing.T) {
	repo := &mockAccountRepository{updateImageErr: repository.ErrNotFound}
	svc := NewProfileService(repo, &mockImageStore{}, zap.NewNop())

	err := svc.UpdateProfileImage(context.Background(), "ghost", domain.ProfileImage{Key: "k", Location: "l"})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
}
