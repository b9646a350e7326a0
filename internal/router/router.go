package router // package router assembles the middleware pipeline and the API routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/visits-api/internal/config"
	"github.com/iliyamo/visits-api/internal/handler"
	"github.com/iliyamo/visits-api/internal/metrics"
	"github.com/iliyamo/visits-api/internal/middleware"
)

// Deps carries everything New needs.  Redis and Metrics may be nil.
type Deps struct {
	Config  config.Config
	Logger  *zap.Logger
	API     *handler.APIHandler
	Redis   *redis.Client
	Metrics *metrics.Metrics
}

// New builds the Echo instance.  Every request passes through the same
// ordered pipeline before reaching a handler:
//
//	request id → security headers → CORS → metrics → access log →
//	body limit → rate limit → panic recovery → route
//
// Errors returned from any stage end in errorHandler.
func New(d Deps) *echo.Echo {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(log)

	e.Pre(echomw.RemoveTrailingSlash())

	e.Use(middleware.RequestID())
	e.Use(middleware.SecureHeaders())
	e.Use(middleware.CORS(d.Config.AllowOrigins)...)
	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
	}
	e.Use(middleware.AccessLog(log))
	if d.Config.BodyLimit != "" {
		e.Use(echomw.BodyLimit(d.Config.BodyLimit))
	}
	e.Use(middleware.NewRateLimiter(d.Config.RateLimit, d.Redis, log))
	e.Use(middleware.Recover(log))

	RegisterRoutes(e, d.API)
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}
	return e
}

// RegisterRoutes maps the API endpoints onto e.  Anything else falls through
// to echo's not-found handling, which errorHandler turns into a JSON 404.
// Read routes answer HEAD as well as GET.
func RegisterRoutes(e *echo.Echo, h *handler.APIHandler) {
	read := []string{http.MethodGet, http.MethodHead}
	e.Match(read, "/", h.Welcome)
	e.Match(read, "/health", h.Health)
	e.Match(read, "/api/user/:username", h.GetUser)
	e.POST("/api/calculate", h.Calculate)
}
