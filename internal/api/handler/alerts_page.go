package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/botaxxx/dashboard/internal/api/views"
	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/service"
)

const (
	defaultAlertPage = 10
	maxAlertPage     = 50
)

// AlertsPageHandler serves the signed-in user's alert inbox.
type AlertsPageHandler struct {
	refreshSeconds int
}

// NewAlertsPageHandler returns a handler whose inbox reloads itself every
// refreshSeconds.
func NewAlertsPageHandler(refreshSeconds int) *AlertsPageHandler {
	return &AlertsPageHandler{refreshSeconds: refreshSeconds}
}

type alertsQuery struct {
	Skip       int  `query:"skip" validate:"min=0"`
	Limit      int  `query:"limit" validate:"min=0"`
	UnreadOnly bool `query:"unread_only"`
}

// Inbox handles GET /alerts?skip=&limit=&unread_only=
func (h *AlertsPageHandler) Inbox(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}

	var q alertsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if q.Limit == 0 {
		q.Limit = defaultAlertPage
	}
	q.Limit = min(q.Limit, maxAlertPage)

	inbox, err := cc.API.Alerts(c.Request().Context(), q.Skip, q.Limit, q.UnreadOnly)
	if err != nil {
		return err
	}

	r, _ := service.LookupRoute(domain.PathAlerts)
	page := pageFor(c, r)
	page.Refresh = h.refreshSeconds
	return views.Render(c, http.StatusOK, views.Alerts(page, views.AlertListing{
		AlertInbox: inbox,
		Skip:       q.Skip,
		Limit:      q.Limit,
		UnreadOnly: q.UnreadOnly,
	}))
}

// MarkRead handles POST /alerts/:id/read.
func (h *AlertsPageHandler) MarkRead(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid alert id")
	}
	if err := cc.API.MarkAlertRead(c.Request().Context(), id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, domain.PathAlerts)
}

// MarkAllRead handles POST /alerts/read-all.
func (h *AlertsPageHandler) MarkAllRead(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}
	if err := cc.API.MarkAllAlertsRead(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, domain.PathAlerts)
}
