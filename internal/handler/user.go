package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/visits-api/internal/model"
)

// GetUser echoes the username from the path.  No lookup happens: every name
// is reported as an active user created now.
func (h *APIHandler) GetUser(c echo.Context) error {
	return c.JSON(http.StatusOK, model.UserRecord{
		Username:  pathParam(c, "username"),
		Status:    model.UserStatusActive,
		CreatedAt: isoTimestamp(h.now()),
	})
}

// pathParam returns a route parameter decoded exactly once.  echo matches on
// URL.RawPath when net/url kept one, leaving the parameter escaped; otherwise
// it matches on the already decoded URL.Path.
func pathParam(c echo.Context, name string) string {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}
