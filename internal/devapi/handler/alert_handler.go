package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/devapi/middleware"
	"github.com/botaxxx/dashboard/internal/devapi/service"
)

// AlertHandler serves the signed-in user's alert inbox.
type AlertHandler struct {
	alerts *service.AlertService
}

func NewAlertHandler(alerts *service.AlertService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

type inboxQuery struct {
	Skip       int  `query:"skip" validate:"min=0"`
	Limit      int  `query:"limit" validate:"min=0"`
	UnreadOnly bool `query:"unread_only"`
}

// List handles GET /users/me/alerts?skip=&limit=&unread_only=.
func (h *AlertHandler) List(c echo.Context) error {
	var q inboxQuery
	if err := c.Bind(&q); err != nil {
		return fail(c, http.StatusUnprocessableEntity, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return fail(c, http.StatusUnprocessableEntity, err.Error())
	}

	inbox, err := h.alerts.Inbox(c.Request().Context(), middleware.AccountFrom(c).ID, domain.AlertFilter{
		Skip:       q.Skip,
		Limit:      q.Limit,
		UnreadOnly: q.UnreadOnly,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inbox)
}

// MarkRead handles PUT /users/me/alerts/:id/read.
func (h *AlertHandler) MarkRead(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return fail(c, http.StatusUnprocessableEntity, "alert id must be a positive integer")
	}
	err = h.alerts.MarkRead(c.Request().Context(), middleware.AccountFrom(c).ID, id)
	if errors.Is(err, domain.ErrAlertNotFound) {
		return fail(c, http.StatusNotFound, "Alert not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Alert marked as read"})
}

// MarkAllRead handles PUT /users/me/alerts/read-all.
func (h *AlertHandler) MarkAllRead(c echo.Context) error {
	n, err := h.alerts.MarkAllRead(c.Request().Context(), middleware.AccountFrom(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "All alerts marked as read", "updated": n})
}
