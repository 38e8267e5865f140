package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/botaxxx/dashboard/internal/devapi/middleware"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler { return &UserHandler{} }

// Me handles GET /users/me.
func (h *UserHandler) Me(c echo.Context) error {
	account := middleware.AccountFrom(c)
	if account == nil {
		return fail(c, http.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(http.StatusOK, account.Identity())
}
