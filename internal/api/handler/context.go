package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/error-monitor/internal/api/middleware"
	"github.com/99minutos/error-monitor/internal/core/domain"
)

// ctxUser returns the caller bound by the Authenticate middleware. Routes
// mounted without the middleware fail with domain.ErrUnauthenticated.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// isFailure reports whether err should count as a failed attempt in metrics
// rather than an internal error.
func isFailure(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrInvalidCredentials) ||
		errors.Is(err, domain.ErrEmailTaken)
}
