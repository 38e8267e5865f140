// Package devapi is a local stand-in for the REST backend the dashboard
// fronts: accounts, bearer tokens, the maintenance flag, alerts, bank master
// data and the admin endpoints. Finance endpoints answer with empty
// collections.
package devapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	apihandler "github.com/botaxxx/dashboard/internal/api/handler"
	apimiddleware "github.com/botaxxx/dashboard/internal/api/middleware"
	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/devapi/handler"
	"github.com/botaxxx/dashboard/internal/devapi/middleware"
	"github.com/botaxxx/dashboard/internal/devapi/service"
)

// Deps are the collaborators the router wires together.
type Deps struct {
	Accounts     *service.AccountService
	Admin        *service.AdminService
	Banks        *service.BankService
	Alerts       *service.AlertService
	Maintenance  *service.MaintenanceSwitch
	DashboardURL string
	LoginLimit   middleware.RateLimitConfig
	Checks       map[string]apihandler.Check
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = apihandler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(apimiddleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{d.DashboardURL},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Accounts, d.DashboardURL)
	userHandler := handler.NewUserHandler()
	maintenanceHandler := handler.NewMaintenanceHandler(d.Maintenance)
	adminHandler := handler.NewAdminHandler(d.Admin)
	bankHandler := handler.NewBankHandler(d.Banks)
	alertHandler := handler.NewAlertHandler(d.Alerts)
	authMiddleware := middleware.Auth(d.Accounts)

	// --- Public routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login, middleware.RateLimiter(d.LoginLimit))
	auth.GET("/google", authHandler.Google)
	e.GET("/maintenance", maintenanceHandler.Status)
	e.GET("/banks/:filename", bankHandler.Logo)

	// --- Authenticated routes ---
	e.GET("/users/me", userHandler.Me, authMiddleware)
	alerts := e.Group("/users/me/alerts", authMiddleware)
	alerts.GET("", alertHandler.List)
	alerts.PUT("/read-all", alertHandler.MarkAllRead)
	alerts.PUT("/:id/read", alertHandler.MarkRead)
	for _, p := range []string{"/overview", "/savings", "/loans", "/targets", "/bank-accounts"} {
		e.GET(p, emptyCollection, authMiddleware)
	}

	// --- Admin routes ---
	admin := e.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.User)
	admin.PUT("/users/:id/role", adminHandler.UpdateRole)
	admin.PUT("/users/:id/suspend", adminHandler.Suspend)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.POST("/send-alert", adminHandler.SendAlert)
	admin.GET("/maintenance", maintenanceHandler.Status)
	admin.PUT("/maintenance", maintenanceHandler.Set)
	admin.POST("/broadcast", adminHandler.Broadcast)
	admin.GET("/banks", bankHandler.List)
	admin.POST("/banks", bankHandler.Create)
	admin.PUT("/banks/:id", bankHandler.Update)
	admin.PUT("/banks/:id/logo", bankHandler.UpdateLogo)
	admin.DELETE("/banks/:id", bankHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := apihandler.NewHealthHandler()
	healthDepsHandler := apihandler.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}

func emptyCollection(c echo.Context) error {
	if c.Path() == "/overview" {
		return c.JSON(http.StatusOK, map[string]any{
			"total_savings":  0,
			"total_loans":    0,
			"active_targets": 0,
			"bank_accounts":  0,
		})
	}
	return c.JSON(http.StatusOK, []any{})
}
