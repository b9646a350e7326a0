package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/visits-api/internal/model"
)

// Health reports liveness and the seconds elapsed since the process started.
func (h *APIHandler) Health(c echo.Context) error {
	now := h.now()
	uptime := now.Sub(h.Started).Seconds()
	if uptime < 0 {
		uptime = 0
	}
	return c.JSON(http.StatusOK, model.Health{
		Status:    "healthy",
		Uptime:    uptime,
		Timestamp: now.UnixMilli(),
	})
}
