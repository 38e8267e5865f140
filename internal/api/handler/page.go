package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/botaxxx/dashboard/internal/api/middleware"
	"github.com/botaxxx/dashboard/internal/api/views"
	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/service"
	"github.com/botaxxx/dashboard/internal/infrastructure/backend"
)

// pageFor builds the shared page frame for route. Admin links are only
// listed for admins.
func pageFor(c echo.Context, route service.Route) views.Page {
	var id *domain.Identity
	if cc := middleware.ClientFrom(c); cc != nil {
		id = cc.Session.Identity()
	}

	nav := make([]views.NavItem, 0, len(service.Routes))
	for _, r := range service.Routes {
		switch {
		case r.Access == service.AccessPrivate:
		case r.Access == service.AccessAdmin && id.IsAdmin():
		default:
			continue
		}
		nav = append(nav, views.NavItem{Title: r.Title, Href: r.Path})
	}
	return views.Page{Title: route.Title, Active: route.Path, Identity: id, Nav: nav}
}

// client returns the request's client context or fails the request.
func client(c echo.Context) (*middleware.ClientContext, error) {
	cc := middleware.ClientFrom(c)
	if cc == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "client context missing")
	}
	return cc, nil
}

// formFailure picks the status and message for a failed form submission.
// Backend 4xx answers keep their status and detail; anything else shows
// fallback.
func formFailure(err error, fallback string) (int, string) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		if apiErr.Detail != "" {
			return apiErr.Status, apiErr.Detail
		}
		return apiErr.Status, fallback
	}
	return http.StatusBadGateway, fallback
}
