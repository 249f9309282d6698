package domain

import (
	"strings"
	"time"
	"unicode"
)

// Role is the authorization level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// roleRank orders roles by privilege. Admin is a superset of every other role.
var roleRank = map[Role]int{
	RoleUser:  1,
	RoleAdmin: 2,
}

// Satisfies reports whether a holder of r may perform an operation that
// requires the given role. Unknown roles satisfy nothing.
func (r Role) Satisfies(required Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	need, ok := roleRank[required]
	if !ok {
		return r == RoleAdmin
	}
	return have >= need
}

// User models an authenticated actor in the system.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Role         Role       `json:"role"`
	Active       bool       `json:"-"`
	LastLogin    *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"-"`
}

// DisplayName is the name recorded as resolved_by when the user resolves an event.
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NormalizeEmail lower-cases and trims an email so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// ValidatePassword enforces the password complexity rule: at least
// MinPasswordLength characters including an upper-case letter, a lower-case
// letter and a digit.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return NewValidationError("password", "password must be at least 8 characters long")
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return NewValidationError("password", "password must contain at least one uppercase letter, one lowercase letter, and one number")
	}
	return nil
}
