package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/botaxxx/dashboard/internal/devapi/service"
)

type MaintenanceHandler struct {
	sw *service.MaintenanceSwitch
}

func NewMaintenanceHandler(sw *service.MaintenanceSwitch) *MaintenanceHandler {
	return &MaintenanceHandler{sw: sw}
}

// Status handles the public GET /maintenance and the admin read.
func (h *MaintenanceHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sw.State())
}

type maintenanceRequest struct {
	Enabled *bool  `json:"enabled" validate:"required"`
	Message string `json:"message"`
}

// Set handles PUT /admin/maintenance.
func (h *MaintenanceHandler) Set(c echo.Context) error {
	var req maintenanceRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(http.StatusOK, h.sw.Set(*req.Enabled, req.Message))
}
