package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/botaxxx/dashboard/internal/api/views"
	"github.com/botaxxx/dashboard/internal/core/service"
)

// ViewHandler renders the finance and profile views from their backend
// resource.
type ViewHandler struct{}

func NewViewHandler() *ViewHandler {
	return &ViewHandler{}
}

// Show returns the handler for route.
func (h *ViewHandler) Show(route service.Route) echo.HandlerFunc {
	return func(c echo.Context) error {
		cc, err := client(c)
		if err != nil {
			return err
		}
		if route.Resource == "" {
			return views.Render(c, http.StatusOK, views.DataPage(pageFor(c, route), nil))
		}

		raw, err := cc.API.Fetch(c.Request().Context(), route.Resource)
		if err != nil {
			return err
		}
		return views.Render(c, http.StatusOK, views.DataPage(pageFor(c, route), raw))
	}
}
