package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/error-monitor/internal/api/metrics"
	"github.com/99minutos/error-monitor/internal/core/ports"
)

// StatsHandler serves aggregate views over the event store.
type StatsHandler struct {
	events ports.EventService
}

func NewStatsHandler(events ports.EventService) *StatsHandler {
	return &StatsHandler{events: events}
}

// Grouped handles GET /api/stats.
//
// @Summary      Event counts grouped by category, severity and resolution
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.GroupCount
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/stats [get]
func (h *StatsHandler) Grouped(c echo.Context) error {
	groups, err := h.events.GroupedStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

// Summary handles GET /api/stats/summary.
//
// @Summary      Dashboard statistics
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        resolved  query     bool    false  "Filter by resolution state"
// @Param        category  query     string  false  "Filter by category"
// @Param        limit     query     int     false  "Maximum number of events considered"
// @Success      200       {object}  domain.Summary
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Router       /api/stats/summary [get]
func (h *StatsHandler) Summary(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	summary, err := h.events.Summary(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	metrics.UnresolvedEvents.Set(float64(summary.Unresolved))
	return c.JSON(http.StatusOK, summary)
}

// Categories handles GET /api/categories.
//
// @Summary      Category catalog
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Category
// @Failure      401  {object}  errorResponse
// @Router       /api/categories [get]
func (h *StatsHandler) Categories(c echo.Context) error {
	cats, err := h.events.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cats)
}
