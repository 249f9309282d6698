package domain

import (
	"sort"
	"time"
)

// SystemStatus is the health label derived from the unresolved count.
type SystemStatus string

const (
	StatusHealthy  SystemStatus = "Healthy"
	StatusWarning  SystemStatus = "Warning"
	StatusCritical SystemStatus = "Critical"
)

const (
	criticalThreshold = 10
	warningThreshold  = 5
	recentWindow      = time.Hour
)

// StatusFor maps an unresolved count to a SystemStatus.
func StatusFor(unresolved int) SystemStatus {
	switch {
	case unresolved > criticalThreshold:
		return StatusCritical
	case unresolved > warningThreshold:
		return StatusWarning
	default:
		return StatusHealthy
	}
}

// CategoryStats counts the events of one category.
type CategoryStats struct {
	Category   string `json:"category"`
	Total      int    `json:"total"`
	Unresolved int    `json:"unresolved"`
}

// Summary is the set of statistics derived from an event set.
type Summary struct {
	Total      int             `json:"total"`
	Unresolved int             `json:"unresolved"`
	Recent     int             `json:"recent"`
	Status     SystemStatus    `json:"status"`
	Categories []CategoryStats `json:"categories"`
}

// Summarize computes statistics over events as of now. Per-category totals
// include resolved events only when showResolved is set; Unresolved is always
// counted regardless. Categories lists every known category in order, followed
// by categories observed in events but absent from known, sorted by name.
func Summarize(events []*ErrorEvent, known []string, showResolved bool, now time.Time) Summary {
	s := Summary{Total: len(events)}

	perCategory := make(map[string]*CategoryStats, len(known))
	order := make([]string, 0, len(known))
	for _, name := range known {
		if _, dup := perCategory[name]; dup {
			continue
		}
		perCategory[name] = &CategoryStats{Category: name}
		order = append(order, name)
	}

	var extra []string
	cutoff := now.Add(-recentWindow)
	for _, e := range events {
		if !e.Resolved {
			s.Unresolved++
			if e.CreatedAt.After(cutoff) {
				s.Recent++
			}
		}

		cs, ok := perCategory[e.Category]
		if !ok {
			cs = &CategoryStats{Category: e.Category}
			perCategory[e.Category] = cs
			extra = append(extra, e.Category)
		}
		if showResolved || !e.Resolved {
			cs.Total++
		}
		if !e.Resolved {
			cs.Unresolved++
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	s.Categories = make([]CategoryStats, 0, len(order))
	for _, name := range order {
		s.Categories = append(s.Categories, *perCategory[name])
	}
	s.Status = StatusFor(s.Unresolved)
	return s
}
