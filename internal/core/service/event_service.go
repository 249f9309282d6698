package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/error-monitor/internal/core/domain"
	"github.com/99minutos/error-monitor/internal/core/ports"
)

type eventService struct {
	events     ports.EventRepository
	categories ports.CategoryRepository
	now        func() time.Time
	log        zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(
	events ports.EventRepository,
	categories ports.CategoryRepository,
	log zerolog.Logger,
) ports.EventService {
	return &eventService{
		events:     events,
		categories: categories,
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
	}
}

func (s *eventService) List(ctx context.Context, filter domain.EventFilter) ([]*domain.ErrorEvent, error) {
	events, err := s.events.List(ctx, filter.Normalize())
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.ErrorEvent, error) {
	var fields []domain.FieldError
	if strings.TrimSpace(in.Message) == "" {
		fields = append(fields, domain.FieldError{Field: "message", Message: "message is required"})
	}
	if strings.TrimSpace(in.Severity) == "" {
		fields = append(fields, domain.FieldError{Field: "severity", Message: "severity is required"})
	}
	if strings.TrimSpace(in.Category) == "" {
		fields = append(fields, domain.FieldError{Field: "category", Message: "category is required"})
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	severity := domain.Severity(strings.ToLower(strings.TrimSpace(in.Severity)))
	if !severity.Known() {
		s.log.Debug().Str("severity", string(severity)).Msg("unrecognized severity accepted")
	}

	now := s.now()
	created, err := s.events.Create(ctx, &domain.ErrorEvent{
		Message:     in.Message,
		Severity:    severity,
		Category:    strings.TrimSpace(in.Category),
		Description: optional(in.Description),
		Stack:       optional(in.Stack),
		URL:         optional(in.URL),
		UserAgent:   optional(in.UserAgent),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info().Str("event_id", created.ID).Str("category", created.Category).Str("severity", string(created.Severity)).Msg("error event saved")
	return created, nil
}

// Resolve validates the comment before any store round-trip.
func (s *eventService) Resolve(ctx context.Context, in ports.ResolveEventInput) (*domain.ErrorEvent, error) {
	if strings.TrimSpace(in.Comment) == "" {
		return nil, domain.NewValidationError("resolveComment", "resolveComment is required")
	}

	updated, err := s.events.Resolve(ctx, in.ID, in.Comment, in.ResolvedBy, s.now())
	if err != nil {
		return nil, fmt.Errorf("resolve event: %w", err)
	}

	s.log.Info().Str("event_id", updated.ID).Str("resolved_by", in.ResolvedBy).Msg("error event resolved")
	return updated, nil
}

func (s *eventService) Unresolve(ctx context.Context, id string) (*domain.ErrorEvent, error) {
	updated, err := s.events.Unresolve(ctx, id, s.now())
	if err != nil {
		return nil, fmt.Errorf("unresolve event: %w", err)
	}

	s.log.Info().Str("event_id", updated.ID).Msg("error event unresolved")
	return updated, nil
}

func (s *eventService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.events.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete events: %w", err)
	}

	s.log.Warn().Int64("deleted", n).Msg("all error events deleted")
	return n, nil
}

func (s *eventService) GroupedStats(ctx context.Context) ([]domain.GroupCount, error) {
	groups, err := s.events.GroupedCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("grouped stats: %w", err)
	}
	return groups, nil
}

// Summary lists events with filter and aggregates them against the category
// catalog. Per-category totals include resolved events unless the filter
// asks for unresolved events only.
func (s *eventService) Summary(ctx context.Context, filter domain.EventFilter) (*domain.Summary, error) {
	events, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	catalog, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	known := make([]string, 0, len(catalog))
	for _, c := range catalog {
		known = append(known, c.Name)
	}

	showResolved := filter.Resolved == nil || *filter.Resolved
	summary := domain.Summarize(events, known, showResolved, s.now())
	return &summary, nil
}

func (s *eventService) Categories(ctx context.Context) ([]domain.Category, error) {
	if s.categories == nil {
		return domain.DefaultCategories, nil
	}
	cats, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
