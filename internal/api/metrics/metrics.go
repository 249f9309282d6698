// Package metrics defines and registers all custom Prometheus metrics for the
// error monitor API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "error_monitor"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register/login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// TokenVerificationsTotal counts bearer token checks performed by the gate.
// Label:
//   - result: "ok", "missing", "invalid" or "error"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// RoleDenialsTotal counts requests rejected by a role check.
// Label:
//   - required: the role the route demanded
var RoleDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_denials_total",
		Help:      "Total number of requests rejected for insufficient role.",
	},
	[]string{"required"},
)

// RateLimitedTotal counts requests rejected by the auth rate limiter.
// Label:
//   - backend: "redis" or "local"
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
	[]string{"backend"},
)

// ── Error event metrics ───────────────────────────────────────────────────────

// EventsCreatedTotal counts reported error events.
// Label:
//   - severity: the reported severity, or "other" for unrecognised values
var EventsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_created_total",
		Help:      "Total number of error events reported, by severity.",
	},
	[]string{"severity"},
)

// EventTransitionsTotal counts resolution state changes.
// Label:
//   - action: "resolve" or "unresolve"
var EventTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_transitions_total",
		Help:      "Total number of resolve/unresolve operations applied.",
	},
	[]string{"action"},
)

// EventsDeletedTotal counts events removed by bulk deletes.
var EventsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_deleted_total",
		Help:      "Total number of error events removed by bulk delete.",
	},
)

// UnresolvedEvents is the unresolved count observed by the last summary request.
var UnresolvedEvents = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "unresolved_events",
		Help:      "Unresolved error events seen by the most recent summary computation.",
	},
)
