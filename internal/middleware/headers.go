package middleware

import (
	"slices"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// SecureHeaders sets the usual hardening headers on every response.
func SecureHeaders() echo.MiddlewareFunc {
	return echomw.SecureWithConfig(echomw.SecureConfig{
		XSSProtection:         "0",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		HSTSMaxAge:            15552000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "no-referrer",
	})
}

// CORS answers preflight requests and reflects allowed origins.  echo's CORS
// middleware skips requests without an Origin header, so for a wildcard
// policy AllowOrigin is stacked in front to cover them.
func CORS(origins []string) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		AllowOrigin(origins),
		echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: origins}),
	}
}

// AllowOrigin sets Access-Control-Allow-Origin: * on requests that carry no
// Origin header when origins is empty or contains "*".
func AllowOrigin(origins []string) echo.MiddlewareFunc {
	wildcard := len(origins) == 0 || slices.Contains(origins, "*")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !wildcard {
			return next
		}
		return func(c echo.Context) error {
			if c.Request().Header.Get(echo.HeaderOrigin) == "" {
				c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")
			}
			return next(c)
		}
	}
}
