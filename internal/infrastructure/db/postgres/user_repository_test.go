package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/error-monitor/internal/core/domain"
)

const testUserID = "5f1c2b8e-6a53-4c1e-9d7a-2b7c0e4f9a11"

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var userCols = []string{"id", "email", "password", "first_name", "last_name", "role", "is_active", "last_login", "created_at"}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("demo@x.com", "hash", "Demo", "User", "user", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(testUserID, created))

	u, err := repo.Create(context.Background(), &domain.User{
		Email: "demo@x.com", PasswordHash: "hash", FirstName: "Demo", LastName: "User",
		Role: domain.RoleUser, Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, testUserID, u.ID)
	assert.Equal(t, created, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	_, err := repo.Create(context.Background(), &domain.User{Email: "demo@x.com", Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUserRepository_Create_OtherError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO users").WillReturnError(errors.New("boom"))

	_, err := repo.Create(context.Background(), &domain.User{Email: "demo@x.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`FROM users WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("demo@x.com").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(testUserID, "demo@x.com", "hash", "Demo", "User", "admin", true, nil, created))

	u, err := repo.FindByEmail(context.Background(), "demo@x.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.True(t, u.Active)
	assert.Nil(t, u.LastLogin)
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("FROM users").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_FindByID_MalformedID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	_, err := repo.FindByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID_LastLogin(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	login := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM users WHERE id = ").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(testUserID, "demo@x.com", "hash", "Demo", "User", "user", false, login, login))

	u, err := repo.FindByID(context.Background(), testUserID)
	require.NoError(t, err)
	require.NotNil(t, u.LastLogin)
	assert.Equal(t, login, *u.LastLogin)
	assert.False(t, u.Active)
}

func TestUserRepository_UpdateLastLogin(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	at := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE users SET last_login").
		WithArgs(testUserID, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateLastLogin(context.Background(), testUserID, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetActive_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE users SET is_active").
		WithArgs(testUserID, false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetActive(context.Background(), testUserID, false)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
