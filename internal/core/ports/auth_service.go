package ports

import (
	"context"

	"github.com/99minutos/error-monitor/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService issues and verifies session tokens.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	IssueToken(user *domain.User) (string, error)
	// VerifyToken returns domain.ErrInvalidToken for any signature, format or
	// expiry failure, and when the referenced user is missing or inactive.
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
}

// TokenCache remembers recently verified tokens. A miss is reported as
// (nil, nil).
type TokenCache interface {
	Get(ctx context.Context, token string) (*domain.User, error)
	Set(ctx context.Context, token string, user *domain.User) error
}
