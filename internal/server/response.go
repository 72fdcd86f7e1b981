package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kevinblo/fwords-backend/internal/progress"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// respondDomainError maps the progress sentinels onto HTTP statuses. A row
// owned by another user reports as not found, never as forbidden.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, progress.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, progress.ErrInvalidReference):
		RespondError(c, http.StatusBadRequest, "invalid_reference", err)
	case errors.Is(err, progress.ErrInvalidArgument):
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal server error"))
	}
}
