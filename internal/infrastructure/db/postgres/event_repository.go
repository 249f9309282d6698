package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/99minutos/error-monitor/internal/core/domain"
)

const eventColumns = `id, message, severity, category, description, stack, url, user_agent,
resolved, resolved_at, resolve_comment, resolved_by, created_at, updated_at`

// EventRepository implements ports.EventRepository and ports.CategoryRepository
// on PostgreSQL.
type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *EventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.ErrorEvent, error) {
	filter = filter.Normalize()

	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT ` + eventColumns + ` FROM errors WHERE 1=1`)
	if filter.Resolved != nil {
		args = append(args, *filter.Resolved)
		fmt.Fprintf(&sb, " AND resolved = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		fmt.Fprintf(&sb, " AND category = $%d", len(args))
	}
	args = append(args, filter.Limit)
	fmt.Fprintf(&sb, " ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list errors: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.ErrorEvent, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list errors: %w", err)
	}
	return events, nil
}

func (r *EventRepository) Create(ctx context.Context, event *domain.ErrorEvent) (*domain.ErrorEvent, error) {
	q := `INSERT INTO errors (message, severity, category, description, stack, url, user_agent)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + eventColumns

	e, err := scanEvent(r.db.QueryRowContext(ctx, q,
		event.Message, string(event.Severity), event.Category,
		nullString(event.Description), nullString(event.Stack), nullString(event.URL), nullString(event.UserAgent),
	))
	if err != nil {
		return nil, fmt.Errorf("insert error: %w", err)
	}
	return e, nil
}

func (r *EventRepository) Resolve(ctx context.Context, id, comment, resolvedBy string, at time.Time) (*domain.ErrorEvent, error) {
	q := `UPDATE errors
SET resolved = TRUE, resolved_at = $2, resolve_comment = $3, resolved_by = $4, updated_at = $2
WHERE id = $1
RETURNING ` + eventColumns
	return r.update(ctx, "resolve error", q, id, at.UTC(), comment, resolvedBy)
}

func (r *EventRepository) Unresolve(ctx context.Context, id string, at time.Time) (*domain.ErrorEvent, error) {
	q := `UPDATE errors
SET resolved = FALSE, resolved_at = NULL, resolve_comment = NULL, resolved_by = NULL, updated_at = $2
WHERE id = $1
RETURNING ` + eventColumns
	return r.update(ctx, "unresolve error", q, id, at.UTC())
}

func (r *EventRepository) update(ctx context.Context, op, q, id string, args ...any) (*domain.ErrorEvent, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrEventNotFound
	}
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, append([]any{id}, args...)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

func (r *EventRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM errors`)
	if err != nil {
		return 0, fmt.Errorf("delete errors: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete errors: %w", err)
	}
	return n, nil
}

func (r *EventRepository) GroupedCounts(ctx context.Context) ([]domain.GroupCount, error) {
	const q = `SELECT category, severity, resolved, COUNT(*)
FROM errors
GROUP BY category, severity, resolved
ORDER BY category, severity, resolved`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("group errors: %w", err)
	}
	defer rows.Close()

	out := make([]domain.GroupCount, 0)
	for rows.Next() {
		var (
			g        domain.GroupCount
			severity string
		)
		if err := rows.Scan(&g.Category, &severity, &g.Resolved, &g.Count); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		g.Severity = domain.Severity(severity)
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("group errors: %w", err)
	}
	return out, nil
}

func (r *EventRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, description, color FROM error_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Name, &c.Description, &c.Color); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func scanEvent(row rowScanner) (*domain.ErrorEvent, error) {
	var (
		e                                  domain.ErrorEvent
		severity                           string
		description, stack, url, userAgent sql.NullString
		resolveComment, resolvedBy         sql.NullString
		resolvedAt                         sql.NullTime
	)
	err := row.Scan(
		&e.ID, &e.Message, &severity, &e.Category,
		&description, &stack, &url, &userAgent,
		&e.Resolved, &resolvedAt, &resolveComment, &resolvedBy,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Severity = domain.Severity(severity)
	e.Description = stringPtr(description)
	e.Stack = stringPtr(stack)
	e.URL = stringPtr(url)
	e.UserAgent = stringPtr(userAgent)
	e.ResolveComment = stringPtr(resolveComment)
	e.ResolvedBy = stringPtr(resolvedBy)
	if resolvedAt.Valid {
		t := resolvedAt.Time
		e.ResolvedAt = &t
	}
	return &e, nil
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
