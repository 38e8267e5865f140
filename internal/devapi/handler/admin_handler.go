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

type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

type userListResponse struct {
	Users []domain.Identity `json:"users"`
	Total int64             `json:"total"`
	Skip  int               `json:"skip"`
	Limit int               `json:"limit"`
}

func (h *AdminHandler) Stats(c echo.Context) error {
	st, err := h.admin.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

// ListUsers handles GET /admin/users?skip=&limit=&search=.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	f := domain.AccountFilter{Search: c.QueryParam("search")}
	var err error
	if v := c.QueryParam("skip"); v != "" {
		if f.Skip, err = strconv.Atoi(v); err != nil {
			return fail(c, http.StatusUnprocessableEntity, "skip must be an integer")
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if f.Limit, err = strconv.Atoi(v); err != nil {
			return fail(c, http.StatusUnprocessableEntity, "limit must be an integer")
		}
	}

	accounts, total, applied, err := h.admin.ListUsers(c.Request().Context(), f)
	if err != nil {
		return err
	}
	resp := userListResponse{Users: make([]domain.Identity, 0, len(accounts)), Total: total, Skip: applied.Skip, Limit: applied.Limit}
	for _, a := range accounts {
		resp.Users = append(resp.Users, a.Identity())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) User(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	a, err := h.admin.User(c.Request().Context(), id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return fail(c, http.StatusNotFound, "User not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a.Identity())
}

type roleRequest struct {
	Role domain.Role `json:"role" validate:"required,oneof=admin user"`
}

// UpdateRole handles PUT /admin/users/:id/role.
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusUnprocessableEntity, err.Error())
	}

	a, err := h.admin.UpdateRole(c.Request().Context(), middleware.AccountFrom(c), id, req.Role)
	switch {
	case errors.Is(err, domain.ErrSelfModification):
		return fail(c, http.StatusBadRequest, "Cannot change your own role")
	case errors.Is(err, domain.ErrUserNotFound):
		return fail(c, http.StatusNotFound, "User not found")
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, a.Identity())
}

type suspendRequest struct {
	Suspend *bool `json:"suspend" validate:"required"`
}

// Suspend handles PUT /admin/users/:id/suspend.
func (h *AdminHandler) Suspend(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	var req suspendRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusUnprocessableEntity, err.Error())
	}

	a, err := h.admin.Suspend(c.Request().Context(), middleware.AccountFrom(c), id, *req.Suspend)
	switch {
	case errors.Is(err, domain.ErrSelfModification):
		return fail(c, http.StatusBadRequest, "Cannot suspend yourself")
	case errors.Is(err, domain.ErrUserNotFound):
		return fail(c, http.StatusNotFound, "User not found")
	case err != nil:
		return err
	}

	verb := "unsuspended"
	if *req.Suspend {
		verb = "suspended"
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "User " + verb + " successfully",
		"user":    a.Identity(),
	})
}

type broadcastRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
	Title   string `json:"title" validate:"max=200"`
}

// Broadcast handles POST /admin/broadcast.
func (h *AdminHandler) Broadcast(c echo.Context) error {
	var req broadcastRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusUnprocessableEntity, err.Error())
	}

	n, err := h.admin.Broadcast(c.Request().Context(), req.Title, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":     "Broadcast sent successfully",
		"users_count": n,
		"content":     req.Message,
	})
}

type sendAlertRequest struct {
	UserID  int64  `json:"user_id" validate:"required,gt=0"`
	Message string `json:"message" validate:"required,max=1000"`
	Title   string `json:"title" validate:"max=200"`
}

// SendAlert handles POST /admin/send-alert.
func (h *AdminHandler) SendAlert(c echo.Context) error {
	var req sendAlertRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusUnprocessableEntity, err.Error())
	}

	a, err := h.admin.SendAlert(c.Request().Context(), req.UserID, req.Title, req.Message)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return fail(c, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrRecipientAbsent):
		return fail(c, http.StatusBadRequest, "User is suspended")
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":    "Alert sent successfully",
		"user_id":    a.ID,
		"user_name":  a.Name,
		"user_email": a.Email,
	})
}

// DeleteUser handles DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	err = h.admin.DeleteUser(c.Request().Context(), middleware.AccountFrom(c), id)
	switch {
	case errors.Is(err, domain.ErrSelfModification):
		return fail(c, http.StatusBadRequest, "Cannot delete yourself")
	case errors.Is(err, domain.ErrUserNotFound):
		return fail(c, http.StatusNotFound, "User not found")
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":         "User deleted successfully",
		"deleted_user_id": id,
	})
}

func userID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "user id must be a positive integer")
	}
	return id, nil
}
