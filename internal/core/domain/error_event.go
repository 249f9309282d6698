package domain

import "time"

// Severity is the reported impact of an error event. Values outside the
// recognized set are accepted and stored as-is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Known reports whether s is one of the recognized severities.
func (s Severity) Known() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// CategoryAll is the category filter value that disables category filtering.
const CategoryAll = "all"

// DefaultListLimit bounds List results when the caller does not supply a limit.
const DefaultListLimit = 100

// ErrorEvent is a recorded error/incident.
//
// ResolvedAt, ResolveComment and ResolvedBy are non-nil iff Resolved is true.
type ErrorEvent struct {
	ID             string     `json:"id" bson:"_id"`
	Message        string     `json:"message" bson:"message"`
	Severity       Severity   `json:"severity" bson:"severity"`
	Category       string     `json:"category" bson:"category"`
	Description    *string    `json:"description" bson:"description"`
	Stack          *string    `json:"stack" bson:"stack"`
	URL            *string    `json:"url" bson:"url"`
	UserAgent      *string    `json:"user_agent" bson:"user_agent"`
	Resolved       bool       `json:"resolved" bson:"resolved"`
	ResolvedAt     *time.Time `json:"resolved_at" bson:"resolved_at"`
	ResolveComment *string    `json:"resolve_comment" bson:"resolve_comment"`
	ResolvedBy     *string    `json:"resolved_by" bson:"resolved_by"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" bson:"updated_at"`
}

// Resolve moves the event to the resolved state, setting all resolution
// fields together.
func (e *ErrorEvent) Resolve(comment, resolvedBy string, at time.Time) {
	e.Resolved = true
	e.ResolvedAt = &at
	e.ResolveComment = &comment
	e.ResolvedBy = &resolvedBy
	e.UpdatedAt = at
}

// Unresolve clears every resolution field. Calling it on an unresolved event
// only bumps UpdatedAt.
func (e *ErrorEvent) Unresolve(at time.Time) {
	e.Resolved = false
	e.ResolvedAt = nil
	e.ResolveComment = nil
	e.ResolvedBy = nil
	e.UpdatedAt = at
}

// ResolutionConsistent reports whether the resolution metadata agrees with
// the Resolved flag.
func (e *ErrorEvent) ResolutionConsistent() bool {
	set := e.ResolvedAt != nil && e.ResolveComment != nil && e.ResolvedBy != nil
	cleared := e.ResolvedAt == nil && e.ResolveComment == nil && e.ResolvedBy == nil
	if e.Resolved {
		return set
	}
	return cleared
}

// EventFilter selects events for List. Nil Resolved and empty Category (or
// CategoryAll) disable the respective filter.
type EventFilter struct {
	Resolved *bool
	Category string
	Limit    int
}

// Normalize applies the default limit and folds CategoryAll into no filter.
func (f EventFilter) Normalize() EventFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Category == CategoryAll {
		f.Category = ""
	}
	return f
}

// Matches reports whether e passes the filter's equality predicates.
func (f EventFilter) Matches(e *ErrorEvent) bool {
	if f.Resolved != nil && e.Resolved != *f.Resolved {
		return false
	}
	if f.Category != "" && f.Category != CategoryAll && e.Category != f.Category {
		return false
	}
	return true
}

// Category is an entry of the seeded category catalog.
type Category struct {
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
	Color       string `json:"color" bson:"color"`
}

// DefaultCategories is the catalog seeded into a fresh store.
var DefaultCategories = []Category{
	{Name: "database", Description: "Database related errors", Color: "#fed7d7"},
	{Name: "api", Description: "API and external service errors", Color: "#feebc8"},
	{Name: "security", Description: "Authentication and security errors", Color: "#fbb6ce"},
	{Name: "filesystem", Description: "File and storage errors", Color: "#c6f6d5"},
	{Name: "performance", Description: "Performance and memory issues", Color: "#bee3f8"},
	{Name: "network", Description: "Network connectivity errors", Color: "#e9d8fd"},
	{Name: "system", Description: "System resource errors", Color: "#fed7e2"},
	{Name: "external", Description: "Third-party service errors", Color: "#fefcbf"},
	{Name: "cache", Description: "Caching system errors", Color: "#c6f6d5"},
	{Name: "infrastructure", Description: "Infrastructure and deployment errors", Color: "#fed7d7"},
	{Name: "backup", Description: "Backup and recovery errors", Color: "#e6fffa"},
}

// GroupCount is one row of the grouped statistics: the number of events
// sharing a category, severity and resolution state.
type GroupCount struct {
	Category string   `json:"category" bson:"category"`
	Severity Severity `json:"severity" bson:"severity"`
	Resolved bool     `json:"resolved" bson:"resolved"`
	Count    int64    `json:"count" bson:"count"`
}
