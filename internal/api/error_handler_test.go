package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/wanderplan/travel-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"missing fields", domain.ErrMissingFields, http.StatusBadRequest, domain.ErrMissingFields.Error()},
		{"invalid email", domain.ErrInvalidEmail, http.StatusBadRequest, domain.ErrInvalidEmail.Error()},
		{"password too short", domain.ErrPasswordTooShort, http.StatusBadRequest, domain.ErrPasswordTooShort.Error()},
		{"password complexity", domain.ErrPasswordComplexity, http.StatusBadRequest, domain.ErrPasswordComplexity.Error()},
		{"name taken", domain.ErrNameTaken, http.StatusBadRequest, domain.ErrNameTaken.Error()},
		{"email taken", domain.ErrEmailTaken, http.StatusBadRequest, domain.ErrEmailTaken.Error()},
		{"invalid otp", domain.ErrInvalidOTP, http.StatusBadRequest, domain.ErrInvalidOTP.Error()},
		{"otp expired", domain.ErrOTPExpired, http.StatusBadRequest, domain.ErrOTPExpired.Error()},
		{"wrong old password", domain.ErrWrongOldPassword, http.StatusBadRequest, domain.ErrWrongOldPassword.Error()},
		{"same password", domain.ErrSamePassword, http.StatusBadRequest, domain.ErrSamePassword.Error()},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, domain.ErrUserNotFound.Error()},
		{"wrapped domain error", errors.Join(errors.New("context"), domain.ErrOTPExpired), http.StatusBadRequest, domain.ErrOTPExpired.Error()},
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "invalid token"), http.StatusUnauthorized, "invalid token"},
		{"unexpected error", errors.New("mongo exploded"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/users", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := NewHTTPErrorHandler(zerolog.Nop())
			handler(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Success {
				t.Fatalf("error response must not claim success")
			}
			if resp.Message != tt.wantMsg {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, resp.Message)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = c.NoContent(http.StatusOK)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(errors.New("late failure"), c)

	if rec.Code != http.StatusOK {
		t.Fatalf("committed response must not be rewritten, got %d", rec.Code)
	}
}
