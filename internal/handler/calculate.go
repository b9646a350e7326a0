package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/visits-api/internal/model"
	"github.com/iliyamo/visits-api/internal/queue"
	"github.com/iliyamo/visits-api/internal/service"
)

// Calculate validates {a, b} and returns sum, product, difference and
// quotient.  Bodies not declared as JSON are treated as empty.
func (h *APIHandler) Calculate(c echo.Context) error {
	var body []byte
	if isJSON(c.Request().Header.Get(echo.HeaderContentType)) {
		b, err := io.ReadAll(c.Request().Body)
		if err != nil {
			var he *echo.HTTPError
			if errors.As(err, &he) {
				return he // body limit exceeded
			}
			return fmt.Errorf("read body: %w", err)
		}
		body = b
	}

	req, err := service.ParseOperands(body)
	switch {
	case errors.Is(err, service.ErrMissingParameters):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "Missing parameters",
			"message": "Both a and b are required",
		})
	case errors.Is(err, service.ErrInvalidParameters):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "Invalid parameters",
			"message": "Both a and b must be numbers",
		})
	case errors.Is(err, service.ErrMalformedBody):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "Invalid JSON",
			"message": err.Error(),
		})
	case err != nil:
		return err
	}

	res := service.Calculate(req)
	h.publish(c, req, res)
	return c.JSON(http.StatusOK, res)
}

// publish sends the calculation event without holding up the response.
func (h *APIHandler) publish(c echo.Context, req model.CalculationRequest, res model.CalculationResult) {
	if h.Events == nil {
		return
	}
	ev := queue.CalculationPerformedEvent{
		RequestID:   c.Response().Header().Get(echo.HeaderXRequestID),
		RemoteIP:    c.RealIP(),
		A:           req.A,
		B:           req.B,
		Result:      res,
		PerformedAt: isoTimestamp(h.now()),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Events.PublishCalculation(ctx, ev); err != nil {
			h.Logger.Warn("calculation event not published", zap.String("request_id", ev.RequestID), zap.Error(err))
		}
	}()
}

func isJSON(contentType string) bool {
	mt, _, _ := strings.Cut(contentType, ";")
	mt = strings.ToLower(strings.TrimSpace(mt))
	return mt == echo.MIMEApplicationJSON || strings.HasSuffix(mt, "+json")
}
