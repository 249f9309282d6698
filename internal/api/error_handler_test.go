package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/error-monitor/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", domain.NewValidationError("email", "email must be a valid email"), http.StatusBadRequest, "Validation failed"},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, "Access token required"},
		{"invalid token", domain.ErrInvalidToken, http.StatusForbidden, "Invalid or expired token"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "Insufficient permissions"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{"email taken", domain.ErrEmailTaken, http.StatusBadRequest, "Email already registered"},
		{"not found wrapped", fmt.Errorf("resolve event: %w", domain.ErrEventNotFound), http.StatusNotFound, "Error not found"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	err := &domain.ValidationError{Fields: []domain.FieldError{
		{Field: "message", Message: "message is required"},
		{Field: "category", Message: "category is required"},
	}}
	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Details) != 2 || body.Details[0] != "message is required" {
		t.Fatalf("unexpected details %v", body.Details)
	}
}

func TestHTTPErrorHandler_InternalDoesNotLeak(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("dial tcp 10.0.0.3:5432: secret detail"), c)

	if got := rec.Body.String(); strings.Contains(got, "10.0.0.3") {
		t.Fatalf("internal detail leaked: %s", got)
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.NoContent(http.StatusTeapot)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrForbidden, c)
	if rec.Code != http.StatusTeapot {
		t.Fatalf("committed response must not be overwritten, got %d", rec.Code)
	}
}
