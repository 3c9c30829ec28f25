package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/articlepost/account-service/internal/core/domain"
	"github.com/articlepost/account-service/internal/infra/security"
	"github.com/articlepost/account-service/internal/usecase"
)

// ErrorResponse matches the handlers.ErrorResponse structure
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// newErrorResponse creates an error response with trace ID
func newErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	return ErrorResponse{
		Error:   errorMsg,
		TraceID: GetTraceID(c),
	}
}

// RequireAuth validates the Authorization header, resolves the bearer
// token to an account and stores it on the context. The rejection
// messages are fixed client-facing text; an expired token gets a
// distinct message so clients can prompt for a fresh login.
func RequireAuth(authService *usecase.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				newErrorResponse(c, "You are not logged in! Login to get access."))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				newErrorResponse(c, "You are not logged in! Login to get access."))
			return
		}

		token := strings.TrimSpace(parts[1])
		account, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, security.ErrTokenExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					newErrorResponse(c, "Token Expired! Login to get access."))
			case errors.Is(err, usecase.ErrAccountNotFound):
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					newErrorResponse(c, "The user belonging to this token does no longer exist."))
			case errors.Is(err, usecase.ErrAccountDeleted):
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					newErrorResponse(c, "The user belonging to this token has been deleted."))
			case errors.Is(err, security.ErrTokenInvalid), errors.Is(err, security.ErrTokenSubjectMiss):
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					newErrorResponse(c, "You are not authenticated!"))
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					newErrorResponse(c, "authentication failed"))
			}
			return
		}

		c.Set(AccountIDKey, account.ID)
		c.Set(AccountKey, account)

		if reqCtx := GetRequestContext(c); reqCtx != nil {
			reqCtx.AccountID = account.ID
		}

		c.Next()
	}
}

// CurrentAccount returns the account stored by RequireAuth.
func CurrentAccount(c *gin.Context) (*domain.Account, bool) {
	value, exists := c.Get(AccountKey)
	if !exists {
		return nil, false
	}
	account, ok := value.(*domain.Account)
	return account, ok
}
