package ports

import (
	"context"

	"github.com/99minutos/error-monitor/internal/core/domain"
)

// CreateEventInput is the DTO passed from the transport layer to EventService.
type CreateEventInput struct {
	Message     string
	Severity    string
	Category    string
	Description string
	Stack       string
	URL         string
	UserAgent   string
}

// ResolveEventInput carries the resolution comment and the resolver's display name.
type ResolveEventInput struct {
	ID         string
	Comment    string
	ResolvedBy string
}

// EventService implements the error event lifecycle.
type EventService interface {
	List(ctx context.Context, filter domain.EventFilter) ([]*domain.ErrorEvent, error)
	Create(ctx context.Context, in CreateEventInput) (*domain.ErrorEvent, error)
	Resolve(ctx context.Context, in ResolveEventInput) (*domain.ErrorEvent, error)
	Unresolve(ctx context.Context, id string) (*domain.ErrorEvent, error)
	// DeleteAll trusts its caller to have authorized an admin.
	DeleteAll(ctx context.Context) (int64, error)
	GroupedStats(ctx context.Context) ([]domain.GroupCount, error)
	Summary(ctx context.Context, filter domain.EventFilter) (*domain.Summary, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}
