package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/error-monitor/internal/api/metrics"
	"github.com/99minutos/error-monitor/internal/core/domain"
)

// userKey is the echo context key holding the authenticated *domain.User.
const userKey = "user"

// TokenVerifier is the slice of the identity service the gate depends on.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
}

// Authenticate requires a valid bearer token and binds the verified user to
// the request context. A missing token yields domain.ErrUnauthenticated; a
// token that fails verification yields domain.ErrInvalidToken.
func Authenticate(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return domain.ErrUnauthenticated
			}

			user, err := verifier.VerifyToken(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidToken) {
					metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				} else {
					metrics.TokenVerificationsTotal.WithLabelValues("error").Inc()
				}
				return err
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(userKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user bound by Authenticate.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(userKey).(*domain.User)
	return u, ok && u != nil
}

// SetUser binds u as the authenticated user. Used by Authenticate and tests.
func SetUser(c echo.Context, u *domain.User) {
	c.Set(userKey, u)
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
