package handler

import (
	"github.com/99minutos/error-monitor/internal/core/domain"
)

type registerRequest struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,password"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName"  validate:"required,max=50"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type createEventRequest struct {
	Message     string `json:"message"     validate:"required"`
	Severity    string `json:"severity"    validate:"required"`
	Category    string `json:"category"    validate:"required"`
	Description string `json:"description"`
	Stack       string `json:"stack"`
	URL         string `json:"url"`
	UserAgent   string `json:"userAgent"`
}

type resolveEventRequest struct {
	ResolveComment string `json:"resolveComment"`
	// ResolvedBy is accepted for compatibility; the caller's name is recorded.
	ResolvedBy string `json:"resolvedBy"`
}

type eventResponse struct {
	Success bool               `json:"success"`
	Error   *domain.ErrorEvent `json:"error"`
}

type deleteResponse struct {
	Success      bool  `json:"success"`
	DeletedCount int64 `json:"deletedCount"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}
