package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/articlepost/account-service/internal/usecase"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth *usecase.AuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *usecase.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login exchanges credentials for an access token. Every credential
// failure maps to the same 401 so callers cannot probe which part of
// the pair was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request body"))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondWithAccountError(c, err, ErrorCase{
			Err:     usecase.ErrInvalidCredentials,
			Status:  http.StatusUnauthorized,
			Message: "incorrect credentials",
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:   result.Token,
		Account: newAccountPayload(result.Account),
	})
}
