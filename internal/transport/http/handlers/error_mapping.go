package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/articlepost/account-service/internal/usecase"
)

// ErrorCase maps a sentinel error to an HTTP status code and response message.
type ErrorCase struct {
	Err     error
	Status  int
	Message string
}

// RespondWithMappedError resolves the provided error against known cases or falls back to a generic response.
func RespondWithMappedError(c *gin.Context, err error, cases []ErrorCase, fallbackStatus int, fallbackMessage string) {
	if err == nil {
		c.Status(http.StatusOK)
		return
	}

	for _, cs := range cases {
		if cs.Err == nil {
			continue
		}
		if errors.Is(err, cs.Err) {
			c.JSON(cs.Status, NewErrorResponse(c, cs.Message))
			return
		}
	}

	c.JSON(fallbackStatus, NewErrorResponse(c, fallbackMessage))
}

// RespondWithAccountError handles the typed usecase errors first, then
// falls through to the sentinel case table. Validation and conflict
// messages are returned verbatim.
func RespondWithAccountError(c *gin.Context, err error, cases ...ErrorCase) {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, verr.Message))
		return
	}

	var cerr *usecase.ConflictError
	if errors.As(err, &cerr) {
		c.JSON(http.StatusConflict, NewErrorResponse(c, cerr.Error()))
		return
	}

	RespondWithMappedError(c, err, cases, http.StatusInternalServerError, "internal server error")
}
