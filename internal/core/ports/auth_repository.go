package ports

import (
	"context"
	"time"

	"github.com/99minutos/error-monitor/internal/core/domain"
)

// AuthRepository defines the interface for user credential persistence.
// Emails are passed already normalized.
type AuthRepository interface {
	// Create inserts user and returns the stored record with its generated ID.
	// Returns domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	SetActive(ctx context.Context, id string, active bool) error
}
