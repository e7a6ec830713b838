package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/wanderplan/travel-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. It keeps
// the same shape as success responses: success flag plus a message.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// validationErrors map to 400. Conflicts are included: the mobile client
// treats a taken name/email as an ordinary form error.
var validationErrors = []error{
	domain.ErrMissingFields,
	domain.ErrInvalidEmail,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordComplexity,
	domain.ErrWrongOldPassword,
	domain.ErrSamePassword,
	domain.ErrInvalidOTP,
	domain.ErrOTPExpired,
	domain.ErrOTPThrottled,
	domain.ErrNameTaken,
	domain.ErrEmailTaken,
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "message": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Success: false, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	for _, ve := range validationErrors {
		if errors.Is(err, ve) {
			return http.StatusBadRequest, ve.Error()
		}
	}
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, domain.ErrUserNotFound.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
