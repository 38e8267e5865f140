package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/botaxxx/dashboard/internal/core/domain"
)

// MaintenanceReader exposes the poller's last observed state.
type MaintenanceReader interface {
	Current() domain.MaintenanceState
}

// MaintenanceStatusHandler handles GET /maintenance/status.
type MaintenanceStatusHandler struct {
	state MaintenanceReader
}

func NewMaintenanceStatusHandler(state MaintenanceReader) *MaintenanceStatusHandler {
	return &MaintenanceStatusHandler{state: state}
}

func (h *MaintenanceStatusHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.state.Current())
}
