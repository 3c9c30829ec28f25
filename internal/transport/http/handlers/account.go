package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/articlepost/account-service/internal/core/domain"
	"github.com/articlepost/account-service/internal/transport/http/middleware"
	"github.com/articlepost/account-service/internal/usecase"
)

const maxProfileImageSize = 5 << 20

// AccountHandler exposes registration and account retrieval endpoints.
type AccountHandler struct {
	registration *usecase.RegistrationService
	profile      *usecase.ProfileService
}

// NewAccountHandler constructs AccountHandler.
func NewAccountHandler(registration *usecase.RegistrationService, profile *usecase.ProfileService) *AccountHandler {
	return &AccountHandler{registration: registration, profile: profile}
}

// Register creates a new account from a multipart form. The profile
// image part is optional; when present it is uploaded before the
// account is written, and the registration flow removes the object
// again if anything after the upload fails.
func (h *AccountHandler) Register(c *gin.Context) {
	input := usecase.RegisterInput{
		Name:     c.PostForm("name"),
		Gender:   c.PostForm("gender"),
		UserName: c.PostForm("userName"),
		Email:    c.PostForm("email"),
		Phone:    c.PostForm("phone"),
		Password: c.PostForm("password"),
	}

	upload, hasUpload, err := readProfileImagePart(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid profile image upload"))
		return
	}
	if hasUpload {
		image, err := h.profile.UploadImage(c.Request.Context(), upload.filename, upload.contentType, upload.data)
		if err != nil {
			c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to store profile image"))
			return
		}
		input.ProfileImage = image
	}

	result, err := h.registration.Register(c.Request.Context(), input)
	if err != nil {
		RespondWithAccountError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		Message: "User created successfully.",
		Token:   result.Token,
		Account: newAccountPayload(result.Account),
	})
}

// CurrentUser returns the sanitized account resolved by the auth middleware.
func (h *AccountHandler) CurrentUser(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "You are not logged in! Login to get access."))
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Account: newAccountPayload(account.Sanitized())})
}

// UpdateProfileImage replaces the authenticated account's profile
// image. Without a file part the stored reference is cleared, matching
// the overwrite-only semantics of the field.
func (h *AccountHandler) UpdateProfileImage(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "You are not logged in! Login to get access."))
		return
	}

	upload, hasUpload, err := readProfileImagePart(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid profile image upload"))
		return
	}

	var image domain.ProfileImage
	if hasUpload {
		image, err = h.profile.UploadImage(c.Request.Context(), upload.filename, upload.contentType, upload.data)
		if err != nil {
			c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to store profile image"))
			return
		}
	}

	if err := h.profile.UpdateProfileImage(c.Request.Context(), account.ID, image); err != nil {
		RespondWithAccountError(c, err, ErrorCase{
			Err:     usecase.ErrAccountNotFound,
			Status:  http.StatusUnauthorized,
			Message: "The user belonging to this token does no longer exist.",
		})
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: "User`s profile image updated successfully."})
}

type profileImagePart struct {
	filename    string
	contentType string
	data        []byte
}

func readProfileImagePart(c *gin.Context) (profileImagePart, bool, error) {
	file, header, err := c.Request.FormFile("profileImage")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return profileImagePart{}, false, nil
		}
		return profileImagePart{}, false, err
	}
	defer file.Close()

	if header.Size > maxProfileImageSize {
		return profileImagePart{}, false, errors.New("profile image exceeds size limit")
	}

	data, err := io.ReadAll(io.LimitReader(file, maxProfileImageSize+1))
	if err != nil {
		return profileImagePart{}, false, err
	}
	if len(data) > maxProfileImageSize {
		return profileImagePart{}, false, errors.New("profile image exceeds size limit")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return profileImagePart{
		filename:    header.Filename,
		contentType: contentType,
		data:        data,
	}, true, nil
}
