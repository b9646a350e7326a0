package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// errorHandler renders every error that escapes a handler as JSON.  Unknown
// paths and known paths with the wrong method are both "Route not found";
// anything that is not an *echo.HTTPError is an internal failure whose text
// is surfaced in "message" and whose details stay in the log.
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorBody(err)
		if status >= http.StatusInternalServerError {
			log.Error("internal server error",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(err))
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			log.Error("write error response", zap.Error(werr))
		}
	}
}

func errorBody(err error) (int, echo.Map) {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return http.StatusInternalServerError, echo.Map{
			"error":   "Internal server error",
			"message": err.Error(),
		}
	}

	switch he.Code {
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return http.StatusNotFound, echo.Map{"error": "Route not found"}
	case http.StatusInternalServerError:
		msg := http.StatusText(he.Code)
		if he.Internal != nil {
			msg = he.Internal.Error()
		}
		return he.Code, echo.Map{"error": "Internal server error", "message": msg}
	}

	msg, ok := he.Message.(string)
	if !ok {
		msg = fmt.Sprint(he.Message)
	}
	return he.Code, echo.Map{"error": msg}
}
