package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"
)

type stubDependency struct {
	name string
	err  error
}

func (s stubDependency) Name() string              { return s.name }
func (s stubDependency) Ping(context.Context) error { return s.err }

func TestHealthHandler_Liveness(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want string
	}{
		{nil, "connected"},
		{errors.New("refused"), "disconnected"},
	} {
		h := NewHealthHandler(stubDependency{name: "postgres", err: tc.err})
		h.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

		c, rec := newJSONContext(http.MethodGet, "/health", "")
		if err := h.Liveness(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("liveness must always be 200, got %d", rec.Code)
		}
		var resp livenessResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.Status != "OK" || resp.Database != tc.want || resp.Timestamp != "2025-01-01T00:00:00Z" {
			t.Fatalf("unexpected body %+v", resp)
		}
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	h := NewHealthHandler(stubDependency{name: "postgres"}, stubDependency{name: "redis", err: errors.New("timeout")})

	c, rec := newJSONContext(http.MethodGet, "/health/ready", "")
	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Dependencies["postgres"].Status != "ok" || resp.Dependencies["redis"].Status != "unhealthy" {
		t.Fatalf("unexpected deps %+v", resp.Dependencies)
	}

	h = NewHealthHandler(stubDependency{name: "postgres"})
	c, rec = newJSONContext(http.MethodGet, "/health/ready", "")
	_ = h.Readiness(c)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
