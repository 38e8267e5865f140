package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/botaxxx/dashboard/internal/api/views"
	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/service"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// MaintenanceRefresher re-reads the public maintenance flag on demand.
type MaintenanceRefresher interface {
	Refresh(ctx context.Context) domain.MaintenanceState
}

// AdminPageHandler serves the admin console. Every call goes through the
// browser's gateway, so the backend still enforces the admin role.
type AdminPageHandler struct {
	maintenance MaintenanceRefresher
}

func NewAdminPageHandler(maintenance MaintenanceRefresher) *AdminPageHandler {
	return &AdminPageHandler{maintenance: maintenance}
}

type usersQuery struct {
	Skip   int    `query:"skip" validate:"min=0"`
	Limit  int    `query:"limit" validate:"min=0"`
	Search string `query:"search"`
}

type roleForm struct {
	Role string `form:"role" validate:"required,oneof=user admin"`
}

type suspendForm struct {
	Suspend bool `form:"suspend"`
}

type maintenanceForm struct {
	Enabled bool   `form:"enabled"`
	Message string `form:"message"`
}

type alertForm struct {
	Title   string `form:"title" validate:"max=200"`
	Message string `form:"message" validate:"required,max=1000"`
}

type broadcastForm struct {
	Title   string `form:"title"`
	Message string `form:"message" validate:"required"`
}

func route(path string) service.Route {
	r, _ := service.LookupRoute(path)
	return r
}

// Stats handles GET /admin.
func (h *AdminPageHandler) Stats(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}
	stats, err := cc.API.AdminStats(c.Request().Context())
	if err != nil {
		return err
	}
	return views.Render(c, http.StatusOK, views.Stats(pageFor(c, route("/admin")), stats))
}

// Users handles GET /admin/users?skip=&limit=&search=
func (h *AdminPageHandler) Users(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}

	var q usersQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if q.Limit == 0 {
		q.Limit = defaultPageSize
	}
	q.Limit = min(q.Limit, maxPageSize)

	list, err := cc.API.ListUsers(c.Request().Context(), q.Skip, q.Limit, q.Search)
	if err != nil {
		return err
	}

	listing := views.UserListing{
		Users:  list.Users,
		Total:  list.Total,
		Skip:   q.Skip,
		Limit:  q.Limit,
		Search: q.Search,
	}
	if id := cc.Session.Identity(); id != nil {
		listing.Self = id.ID
	}
	return views.Render(c, http.StatusOK, views.Users(pageFor(c, route("/admin/users")), listing))
}

// UpdateRole handles POST /admin/users/:id/role.
func (h *AdminPageHandler) UpdateRole(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
	if err != nil {
		return err
	}

	var f roleForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&f); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if _, err := cc.API.UpdateUserRole(c.Request().Context(), id, domain.Role(f.Role)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}

// Suspend handles POST /admin/users/:id/suspend.
func (h *AdminPageHandler) Suspend(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
	if err != nil {
		return err
	}

	var f suspendForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if _, err := cc.API.SuspendUser(c.Request().Context(), id, f.Suspend); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}

// Maintenance handles GET /admin/maintenance.
func (h *AdminPageHandler) Maintenance(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}
	st, err := cc.API.AdminMaintenance(c.Request().Context())
	if err != nil {
		return err
	}
	return views.Render(c, http.StatusOK, views.MaintenanceAdmin(pageFor(c, route("/admin/maintenance")), st, ""))
}

// SetMaintenance handles POST /admin/maintenance. The poller is refreshed so
// the new state applies to the next page load instead of the next tick.
func (h *AdminPageHandler) SetMaintenance(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}

	var f maintenanceForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	ctx := c.Request().Context()
	st, err := cc.API.SetMaintenance(ctx, f.Enabled, f.Message)
	if err != nil {
		return err
	}
	h.maintenance.Refresh(ctx)

	flash := "Maintenance mode disabled"
	if st.IsMaintenance {
		flash = "Maintenance mode enabled"
	}
	return views.Render(c, http.StatusOK, views.MaintenanceAdmin(pageFor(c, route("/admin/maintenance")), st, flash))
}

// BroadcastForm handles GET /admin/broadcast.
func (h *AdminPageHandler) BroadcastForm(c echo.Context) error {
	return views.Render(c, http.StatusOK, views.Broadcast(pageFor(c, route("/admin/broadcast")), "", ""))
}

// Broadcast handles POST /admin/broadcast.
func (h *AdminPageHandler) Broadcast(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}
	page := pageFor(c, route("/admin/broadcast"))

	var f broadcastForm
	if err := c.Bind(&f); err != nil {
		return views.Render(c, http.StatusBadRequest, views.Broadcast(page, "", "invalid form"))
	}
	if err := c.Validate(&f); err != nil {
		return views.Render(c, http.StatusUnprocessableEntity, views.Broadcast(page, "", err.Error()))
	}

	res, err := cc.API.Broadcast(c.Request().Context(), f.Title, f.Message)
	if err != nil {
		return err
	}
	return views.Render(c, http.StatusOK, views.Broadcast(page, fmt.Sprintf("%s (%d users)", res.Message, res.UsersCount), ""))
}

// User handles GET /admin/users/:id.
func (h *AdminPageHandler) User(c echo.Context) error {
	return h.renderUser(c, http.StatusOK, "", "")
}

// SendAlert handles POST /admin/users/:id/alert.
func (h *AdminPageHandler) SendAlert(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
	if err != nil {
		return err
	}

	var f alertForm
	if err := c.Bind(&f); err != nil {
		return h.renderUser(c, http.StatusBadRequest, "", "invalid form")
	}
	if err := c.Validate(&f); err != nil {
		return h.renderUser(c, http.StatusUnprocessableEntity, "", err.Error())
	}

	res, err := cc.API.SendAlert(c.Request().Context(), id, f.Title, f.Message)
	if err != nil {
		status, msg := formFailure(err, "could not send the alert")
		return h.renderUser(c, status, "", msg)
	}
	return h.renderUser(c, http.StatusOK, fmt.Sprintf("%s to %s", res.Message, res.UserEmail), "")
}

// DeleteUser handles POST /admin/users/:id/delete.
func (h *AdminPageHandler) DeleteUser(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
	if err != nil {
		return err
	}
	if _, err := cc.API.DeleteUser(c.Request().Context(), id); err != nil {
		status, msg := formFailure(err, "could not delete the user")
		return h.renderUser(c, status, "", msg)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}

func (h *AdminPageHandler) renderUser(c echo.Context, status int, flash, errMsg string) error {
	cc, err := client(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
	if err != nil {
		return err
	}
	u, err := cc.API.UserDetail(c.Request().Context(), id)
	if err != nil {
		return err
	}

	page := pageFor(c, route("/admin/users"))
	page.Title = u.Name
	self := false
	if me := cc.Session.Identity(); me != nil {
		self = me.ID == u.ID
	}
	return views.Render(c, status, views.UserDetail(page, u, self, flash, errMsg))
}

func userID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return id, nil
}
