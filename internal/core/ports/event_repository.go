package ports

import (
	"context"
	"time"

	"github.com/99minutos/error-monitor/internal/core/domain"
)

// EventRepository persists error events. Every mutation is a single atomic
// store operation; concurrent writers on the same id are last-writer-wins.
type EventRepository interface {
	// List returns events matching filter, most recent first. The filter is
	// already normalized.
	List(ctx context.Context, filter domain.EventFilter) ([]*domain.ErrorEvent, error)
	// Create stores event with resolved=false and returns the persisted record
	// including the generated id and timestamps.
	Create(ctx context.Context, event *domain.ErrorEvent) (*domain.ErrorEvent, error)
	// Resolve sets all resolution fields at once. Returns domain.ErrEventNotFound
	// when no event has the given id.
	Resolve(ctx context.Context, id, comment, resolvedBy string, at time.Time) (*domain.ErrorEvent, error)
	// Unresolve clears all resolution fields at once. Returns
	// domain.ErrEventNotFound when no event has the given id.
	Unresolve(ctx context.Context, id string, at time.Time) (*domain.ErrorEvent, error)
	// DeleteAll removes every event and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
	// GroupedCounts counts events grouped by category, severity and resolved.
	GroupedCounts(ctx context.Context) ([]domain.GroupCount, error)
}

// CategoryRepository reads the category catalog.
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
