package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/articlepost/account-service/internal/core/domain"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProfileImagePayload is the API view of a stored profile image.
type ProfileImagePayload struct {
	Key          string `json:"key,omitempty"`
	Location     string `json:"location,omitempty"`
	OriginalName string `json:"originalName,omitempty"`
}

// AccountPayload is the sanitized account view returned by the API.
// Password and reset-token material never appear here.
type AccountPayload struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Gender        domain.Gender        `json:"gender"`
	UserName      string               `json:"userName"`
	Email         string               `json:"email"`
	Phone         string               `json:"phone"`
	Role          domain.Role          `json:"role"`
	Status        domain.AccountStatus `json:"status"`
	ProfileImage  *ProfileImagePayload `json:"profileImage,omitempty"`
	LoginCount    int64                `json:"loginCount"`
	LastLoginDate time.Time            `json:"lastLoginDate"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

func newAccountPayload(account domain.Account) AccountPayload {
	payload := AccountPayload{
		ID:            account.ID,
		Name:          account.Name,
		Gender:        account.Gender,
		UserName:      account.UserName,
		Email:         account.Email,
		Phone:         account.Phone,
		Role:          account.Role,
		Status:        account.Status,
		LoginCount:    account.LoginCount,
		LastLoginDate: account.LastLoginAt,
		CreatedAt:     account.CreatedAt,
		UpdatedAt:     account.UpdatedAt,
	}

	if !account.ProfileImage.Empty() {
		payload.ProfileImage = &ProfileImagePayload{
			Key:          account.ProfileImage.Key,
			Location:     account.ProfileImage.Location,
			OriginalName: account.ProfileImage.OriginalName,
		}
	}

	return payload
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	Account AccountPayload `json:"user"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned for a successful login.
type LoginResponse struct {
	Token   string         `json:"token"`
	Account AccountPayload `json:"user"`
}

// AccountResponse wraps the current account payload.
type AccountResponse struct {
	Account AccountPayload `json:"user"`
}

// UpdatePasswordRequest captures the authenticated password change body.
type UpdatePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// ForgotPasswordRequest starts the reset flow for an email address.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest carries the new password; the token travels in
// the URL path.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// HealthResponse describes the service health payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadyResponse describes readiness probe results with dependency checks.
type ReadyResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
