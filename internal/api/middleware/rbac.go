package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/error-monitor/internal/api/metrics"
	"github.com/99minutos/error-monitor/internal/core/domain"
)

// errNoIdentity means RequireRole was mounted without Authenticate in front.
var errNoIdentity = errors.New("role check reached without an authenticated user")

// RequireRole admits callers whose role satisfies required. Admin satisfies
// every role.
func RequireRole(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return errNoIdentity
			}
			if !user.Role.Satisfies(required) {
				metrics.RoleDenialsTotal.WithLabelValues(string(required)).Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
