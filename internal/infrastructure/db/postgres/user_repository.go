package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/99minutos/error-monitor/internal/core/domain"
)

const uniqueViolation = "23505"

const userColumns = `id, email, password, first_name, last_name, role, is_active, last_login, created_at`

// UserRepository implements ports.AuthRepository on PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const q = `INSERT INTO users (email, password, first_name, last_name, role, is_active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

	created := *user
	err := r.db.QueryRowContext(ctx, q,
		user.Email, user.PasswordHash, user.FirstName, user.LastName, string(user.Role), user.Active,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return r.findOne(ctx, q, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.findOne(ctx, q, id)
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	const q = `UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1`
	return r.exec(ctx, "update last login", q, id, at.UTC())
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	const q = `UPDATE users SET is_active = $2, updated_at = now() WHERE id = $1`
	return r.exec(ctx, "set active", q, id, active)
}

func (r *UserRepository) exec(ctx context.Context, op, q, id string, arg any) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrUserNotFound
	}
	res, err := r.db.ExecContext(ctx, q, id, arg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, q string, arg string) (*domain.User, error) {
	var (
		u         domain.User
		role      string
		lastLogin sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&role, &u.Active, &lastLogin, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.Role = domain.Role(role)
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return &u, nil
}
