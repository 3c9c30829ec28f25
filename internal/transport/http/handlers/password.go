package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/articlepost/account-service/internal/transport/http/middleware"
	"github.com/articlepost/account-service/internal/usecase"
)

// PasswordHandler exposes the password lifecycle endpoints.
type PasswordHandler struct {
	passwords *usecase.PasswordService
}

// NewPasswordHandler constructs PasswordHandler.
func NewPasswordHandler(passwords *usecase.PasswordService) *PasswordHandler {
	return &PasswordHandler{passwords: passwords}
}

// UpdatePassword changes the authenticated account's password after
// re-verifying the current one.
func (h *PasswordHandler) UpdatePassword(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "You are not logged in! Login to get access."))
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request body"))
		return
	}

	err := h.passwords.ChangePassword(c.Request.Context(), account, usecase.ChangePasswordInput{
		CurrentPassword:    req.CurrentPassword,
		NewPassword:        req.NewPassword,
		ConfirmNewPassword: req.ConfirmNewPassword,
	})
	if err != nil {
		RespondWithAccountError(c, err, ErrorCase{
			Err:     usecase.ErrInvalidCredentials,
			Status:  http.StatusUnauthorized,
			Message: "incorrect credentials",
		})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Password update successfully"})
}

// ForgotPassword issues a reset token and mails the reset link. The
// response is the same whether or not the address belongs to an
// account, so the endpoint cannot be used to enumerate registered
// emails.
func (h *PasswordHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request body"))
		return
	}

	err := h.passwords.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, usecase.ErrAccountNotFound) {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "There was an error sending the email. Try again later!"))
		return
	}

	c.JSON(http.StatusOK, MessageResponse{
		Message: "Password reset email send successfully. Check your mail box and reset the password",
	})
}

// ResetPassword consumes a reset token from the URL and sets the new
// password carried in the body.
func (h *PasswordHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request body"))
		return
	}

	err := h.passwords.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		RespondWithAccountError(c, err, ErrorCase{
			Err:     usecase.ErrInvalidOrExpiredResetToken,
			Status:  http.StatusBadRequest,
			Message: "Token is invalid or has expired",
		})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Password Reset successfully"})
}
