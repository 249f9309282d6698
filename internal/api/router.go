package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/error-monitor/docs"
	"github.com/99minutos/error-monitor/internal/api/handler"
	"github.com/99minutos/error-monitor/internal/api/middleware"
	"github.com/99minutos/error-monitor/internal/core/domain"
	"github.com/99minutos/error-monitor/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth   ports.AuthService
	Events ports.EventService

	// AuthLimiter throttles register/login. LimiterBackend labels its metrics.
	AuthLimiter    ports.RateLimiter
	LimiterBackend string

	// Database backs /health; Others are added to /health/ready.
	Database handler.Dependency
	Others   []handler.Dependency

	CORSOrigins []string
	Log         zerolog.Logger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{AllowOrigins: d.CORSOrigins}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "error_monitor",
		Registerer: d.Registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	health := handler.NewHealthHandler(d.Database, d.Others...)
	e.GET("/health", health.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", health.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authHandler := handler.NewAuthHandler(d.Auth)
	eventHandler := handler.NewEventHandler(d.Events)
	statsHandler := handler.NewStatsHandler(d.Events)
	authenticate := middleware.Authenticate(d.Auth)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	limited := []echo.MiddlewareFunc{}
	if d.AuthLimiter != nil {
		limited = append(limited, middleware.RateLimit(d.AuthLimiter, d.LimiterBackend, middleware.KeyByIP("auth"), d.Log))
	}
	auth.POST("/register", authHandler.Register, limited...)
	auth.POST("/login", authHandler.Login, limited...)
	auth.GET("/me", authHandler.Me, authenticate)
	auth.POST("/logout", authHandler.Logout, authenticate)

	// --- Error events (bearer token required) ---
	// authenticate is per route so unknown /api paths still 404.
	api := e.Group("/api")
	api.GET("/errors", eventHandler.List, authenticate)
	api.POST("/errors", eventHandler.Create, authenticate)
	api.PATCH("/errors/:id/resolve", eventHandler.Resolve, authenticate)
	api.PATCH("/errors/:id/unresolve", eventHandler.Unresolve, authenticate)
	api.DELETE("/errors", eventHandler.DeleteAll, authenticate, middleware.RequireRole(domain.RoleAdmin))

	api.GET("/stats", statsHandler.Grouped, authenticate)
	api.GET("/stats/summary", statsHandler.Summary, authenticate)
	api.GET("/categories", statsHandler.Categories, authenticate)

	return e
}
