package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(category string, resolved bool, createdAt time.Time) *ErrorEvent {
	e := &ErrorEvent{Category: category, Severity: SeverityHigh, CreatedAt: createdAt, UpdatedAt: createdAt}
	if resolved {
		e.Resolve("fixed", "Ada Lovelace", createdAt)
	}
	return e
}

func TestStatusFor_Thresholds(t *testing.T) {
	cases := []struct {
		unresolved int
		want       SystemStatus
	}{
		{0, StatusHealthy},
		{5, StatusHealthy},
		{6, StatusWarning},
		{10, StatusWarning},
		{11, StatusCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.unresolved), "unresolved=%d", tc.unresolved)
	}
}

func TestSummarize_Counts(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []*ErrorEvent{
		event("database", false, now.Add(-10*time.Minute)),
		event("database", true, now.Add(-5*time.Minute)),
		event("api", false, now.Add(-3*time.Hour)),
		event("api", false, now.Add(-59*time.Minute)),
	}

	s := Summarize(events, []string{"api", "database", "network"}, false, now)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 3, s.Unresolved)
	assert.Equal(t, 2, s.Recent, "recent counts unresolved events created within the last hour")
	assert.Equal(t, StatusHealthy, s.Status)

	require.Len(t, s.Categories, 3)
	assert.Equal(t, CategoryStats{Category: "api", Total: 2, Unresolved: 2}, s.Categories[0])
	assert.Equal(t, CategoryStats{Category: "database", Total: 1, Unresolved: 1}, s.Categories[1])
	assert.Equal(t, CategoryStats{Category: "network", Total: 0, Unresolved: 0}, s.Categories[2])
}

func TestSummarize_ShowResolvedIncludesResolvedInCategoryTotals(t *testing.T) {
	now := time.Now()
	events := []*ErrorEvent{
		event("database", false, now),
		event("database", true, now),
	}

	s := Summarize(events, []string{"database"}, true, now)

	require.Len(t, s.Categories, 1)
	assert.Equal(t, 2, s.Categories[0].Total)
	assert.Equal(t, 1, s.Categories[0].Unresolved)
}

func TestSummarize_UnknownCategoriesAppendedSorted(t *testing.T) {
	now := time.Now()
	events := []*ErrorEvent{
		event("zeta", false, now),
		event("alpha", false, now),
		event("database", false, now),
	}

	s := Summarize(events, []string{"database"}, false, now)

	names := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		names = append(names, c.Category)
	}
	assert.Equal(t, []string{"database", "alpha", "zeta"}, names)
}

func TestSummarize_ResolvedEventsNeverRecent(t *testing.T) {
	now := time.Now()
	s := Summarize([]*ErrorEvent{event("api", true, now)}, nil, false, now)

	assert.Equal(t, 0, s.Recent)
	assert.Equal(t, 0, s.Unresolved)
	assert.Equal(t, 1, s.Total)
}

func TestSummarize_StatusFollowsUnresolved(t *testing.T) {
	now := time.Now()
	var events []*ErrorEvent
	for i := 0; i < 11; i++ {
		events = append(events, event("system", false, now.Add(-2*time.Hour)))
	}

	s := Summarize(events, nil, false, now)

	assert.Equal(t, StatusCritical, s.Status)
	assert.Equal(t, 0, s.Recent)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil, false, time.Now())

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, StatusHealthy, s.Status)
	assert.NotNil(t, s.Categories)
	assert.Empty(t, s.Categories)
}
