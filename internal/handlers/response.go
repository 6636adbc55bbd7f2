package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondError maps a service error to an HTTP status from its sentinel.
func RespondError(c *gin.Context, err error) {
	status, code := statusFor(err)
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

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apierr.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, apierr.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apierr.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, apierr.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, apierr.ErrConfigurationDefect):
		return http.StatusInternalServerError, "configuration_defect"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
