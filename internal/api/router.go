// Package api is the dashboard gateway: a server-rendered front end for the
// REST backend where each browser is one client context.
package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/botaxxx/dashboard/internal/api/handler"
	"github.com/botaxxx/dashboard/internal/api/middleware"
	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
	"github.com/botaxxx/dashboard/internal/core/service"
)

// Maintenance is what the gateway needs from the maintenance poller.
type Maintenance interface {
	Current() domain.MaintenanceState
	Refresh(ctx context.Context) domain.MaintenanceState
}

// Deps are the collaborators the router wires together.
type Deps struct {
	Clients      middleware.ClientFactory
	Tokens       ports.TokenStoreProvider
	Maintenance  Maintenance
	GoogleURL    string
	CookieSecure bool
	// RefreshSeconds is how often the maintenance page reloads itself.
	RefreshSeconds int
	Checks         map[string]handler.Check
	// Registerer and Gatherer enable HTTP metrics and /metrics when set.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	if d.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "dashboard",
			Subsystem:  "http",
			Registerer: d.Registerer,
		}))
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthPageHandler(d.GoogleURL)
	viewHandler := handler.NewViewHandler()
	adminHandler := handler.NewAdminPageHandler(d.Maintenance)
	bankHandler := handler.NewBankPageHandler()
	alertsHandler := handler.NewAlertsPageHandler(d.RefreshSeconds)
	statusHandler := handler.NewMaintenanceStatusHandler(d.Maintenance)
	clientMiddleware := middleware.Client(middleware.ClientConfig{
		Factory:      d.Clients,
		Tokens:       d.Tokens,
		CookieSecure: d.CookieSecure,
		Log:          d.Log,
	})
	guard := func(path string) echo.MiddlewareFunc {
		return middleware.Guard(mustRoute(path), d.Maintenance, d.RefreshSeconds)
	}

	// --- Views (one client context per browser) ---
	pages := e.Group("", clientMiddleware)

	pages.GET(domain.PathLogin, authHandler.LoginForm, guard(domain.PathLogin))
	pages.POST(domain.PathLogin, authHandler.Login, guard(domain.PathLogin))
	pages.GET(domain.PathRegister, authHandler.RegisterForm, guard(domain.PathRegister))
	pages.POST(domain.PathRegister, authHandler.Register, guard(domain.PathRegister))
	pages.GET(domain.PathOAuthCallback, authHandler.OAuthCallback, guard(domain.PathOAuthCallback))
	pages.POST("/logout", authHandler.Logout)

	for _, r := range service.Routes {
		if r.Access != service.AccessPrivate || r.Path == domain.PathAlerts {
			continue
		}
		pages.GET(r.Path, viewHandler.Show(r), guard(r.Path))
	}
	pages.GET(domain.PathAlerts, alertsHandler.Inbox, guard(domain.PathAlerts))
	pages.POST("/alerts/read-all", alertsHandler.MarkAllRead, guard(domain.PathAlerts))
	pages.POST("/alerts/:id/read", alertsHandler.MarkRead, guard(domain.PathAlerts))

	pages.GET("/admin", adminHandler.Stats, guard("/admin"))
	pages.GET("/admin/users", adminHandler.Users, guard("/admin/users"))
	pages.POST("/admin/users/:id/role", adminHandler.UpdateRole, guard("/admin/users"))
	pages.POST("/admin/users/:id/suspend", adminHandler.Suspend, guard("/admin/users"))
	pages.GET("/admin/users/:id", adminHandler.User, guard("/admin/users"))
	pages.POST("/admin/users/:id/alert", adminHandler.SendAlert, guard("/admin/users"))
	pages.POST("/admin/users/:id/delete", adminHandler.DeleteUser, guard("/admin/users"))
	pages.GET("/admin/maintenance", adminHandler.Maintenance, guard("/admin/maintenance"))
	pages.POST("/admin/maintenance", adminHandler.SetMaintenance, guard("/admin/maintenance"))
	pages.GET("/admin/broadcast", adminHandler.BroadcastForm, guard("/admin/broadcast"))
	pages.POST("/admin/broadcast", adminHandler.Broadcast, guard("/admin/broadcast"))
	pages.GET("/admin/banks", bankHandler.List, guard("/admin/banks"))
	pages.POST("/admin/banks", bankHandler.Create, guard("/admin/banks"))
	pages.POST("/admin/banks/:id", bankHandler.Update, guard("/admin/banks"))
	pages.POST("/admin/banks/:id/logo", bankHandler.UploadLogo, guard("/admin/banks"))
	pages.POST("/admin/banks/:id/delete", bankHandler.Delete, guard("/admin/banks"))

	// --- Public JSON ---
	e.GET("/maintenance/status", statusHandler.Status)

	// --- Health probes and metrics (no client context) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	if d.Gatherer != nil {
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	}

	return e
}

func mustRoute(path string) service.Route {
	r, ok := service.LookupRoute(path)
	if !ok {
		panic("api: no route for " + path)
	}
	return r
}
