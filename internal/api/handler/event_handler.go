package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/error-monitor/internal/api/metrics"
	"github.com/99minutos/error-monitor/internal/core/domain"
	"github.com/99minutos/error-monitor/internal/core/ports"
)

// EventHandler serves the error event lifecycle endpoints.
type EventHandler struct {
	events ports.EventService
}

// NewEventHandler creates an EventHandler backed by the given service.
func NewEventHandler(events ports.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// List handles GET /api/errors.
//
// @Summary      List error events
// @Tags         errors
// @Produce      json
// @Security     BearerAuth
// @Param        resolved  query     bool    false  "Filter by resolution state"
// @Param        category  query     string  false  "Filter by category (all = no filter)"
// @Param        limit     query     int     false  "Maximum number of events (default 100)"
// @Success      200       {array}   domain.ErrorEvent
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /api/errors [get]
func (h *EventHandler) List(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	events, err := h.events.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Create handles POST /api/errors.
//
// @Summary      Report an error event
// @Tags         errors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Error event"
// @Success      200   {object}  eventResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/errors [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.events.Create(c.Request().Context(), ports.CreateEventInput{
		Message:     req.Message,
		Severity:    req.Severity,
		Category:    req.Category,
		Description: req.Description,
		Stack:       req.Stack,
		URL:         req.URL,
		UserAgent:   req.UserAgent,
	})
	if err != nil {
		return err
	}

	severity := string(event.Severity)
	if !event.Severity.Known() {
		severity = "other"
	}
	metrics.EventsCreatedTotal.WithLabelValues(severity).Inc()
	return c.JSON(http.StatusOK, eventResponse{Success: true, Error: event})
}

// Resolve handles PATCH /api/errors/:id/resolve.
//
// @Summary      Resolve an error event
// @Tags         errors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Event id"
// @Param        body  body      resolveEventRequest  true  "Resolution"
// @Success      200   {object}  eventResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/errors/{id}/resolve [patch]
func (h *EventHandler) Resolve(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req resolveEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	event, err := h.events.Resolve(c.Request().Context(), ports.ResolveEventInput{
		ID:         c.Param("id"),
		Comment:    req.ResolveComment,
		ResolvedBy: user.DisplayName(),
	})
	if err != nil {
		return err
	}

	metrics.EventTransitionsTotal.WithLabelValues("resolve").Inc()
	return c.JSON(http.StatusOK, eventResponse{Success: true, Error: event})
}

// Unresolve handles PATCH /api/errors/:id/unresolve.
//
// @Summary      Reopen an error event
// @Tags         errors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  eventResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/errors/{id}/unresolve [patch]
func (h *EventHandler) Unresolve(c echo.Context) error {
	event, err := h.events.Unresolve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.EventTransitionsTotal.WithLabelValues("unresolve").Inc()
	return c.JSON(http.StatusOK, eventResponse{Success: true, Error: event})
}

// DeleteAll handles DELETE /api/errors. Admin only.
//
// @Summary      Delete every error event
// @Tags         errors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  deleteResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/errors [delete]
func (h *EventHandler) DeleteAll(c echo.Context) error {
	n, err := h.events.DeleteAll(c.Request().Context())
	if err != nil {
		return err
	}

	metrics.EventsDeletedTotal.Add(float64(n))
	return c.JSON(http.StatusOK, deleteResponse{Success: true, DeletedCount: n})
}

// parseFilter reads resolved, category and limit from the query string.
// A missing, malformed or non-positive limit falls back to the default.
func parseFilter(c echo.Context) (domain.EventFilter, error) {
	var f domain.EventFilter

	if raw := strings.TrimSpace(c.QueryParam("resolved")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, domain.NewValidationError("resolved", "resolved must be true or false")
		}
		f.Resolved = &v
	}

	f.Category = strings.TrimSpace(c.QueryParam("category"))

	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			f.Limit = n
		}
	}
	return f.Normalize(), nil
}
