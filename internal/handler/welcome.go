package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/visits-api/internal/model"
)

// Welcome records a visit and greets the caller with the running count.
func (h *APIHandler) Welcome(c echo.Context) error {
	count := h.Counter.Increment()
	return c.JSON(http.StatusOK, model.Welcome{
		Message:   WelcomeMessage,
		Version:   APIVersion,
		Visits:    count,
		Hostname:  h.Hostname,
		Timestamp: isoTimestamp(h.now()),
	})
}
