package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/botaxxx/dashboard/internal/api/metrics"
	"github.com/botaxxx/dashboard/internal/api/views"
	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/service"
)

// MaintenanceReader reads the public maintenance flag on demand. A failed
// read yields the inactive state.
type MaintenanceReader interface {
	Refresh(ctx context.Context) domain.MaintenanceState
}

// Guard evaluates route against the client's session and the maintenance
// state, and turns the resulting intent into a response: a loading page, a
// 303 redirect, the maintenance page with the URL left unchanged, or the
// handler itself. Routes that consult maintenance re-read the flag on every
// page load. Client must run first.
func Guard(route service.Route, maintenance MaintenanceReader, refreshSeconds int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := ClientFrom(c)
			if cc == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "client context missing")
			}

			var state domain.MaintenanceState
			if route.ConsultsMaintenance() {
				state = maintenance.Refresh(c.Request().Context())
			}
			intent := service.Evaluate(route, service.InputFrom(cc.Session.Snapshot(), state))
			metrics.GuardOutcomesTotal.WithLabelValues(route.Path, string(intent.Outcome)).Inc()

			switch intent.Outcome {
			case domain.OutcomeWait:
				return views.Render(c, http.StatusOK, views.LoadingPage())
			case domain.OutcomeRedirect:
				return c.Redirect(http.StatusSeeOther, intent.Target)
			case domain.OutcomeBlock:
				return views.Render(c, http.StatusServiceUnavailable, views.Maintenance(intent.Reason, refreshSeconds))
			}
			return next(c)
		}
	}
}
