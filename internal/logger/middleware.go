package logger

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// RequestLogger logs one line per request and stores a request-scoped logger on the request context.
func RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		BeforeNextFunc: func(c echo.Context) {
			req := c.Request()
			ctx := WithLogger(req.Context(), map[string]interface{}{
				"method": req.Method,
				"path":   c.Path(),
			})
			c.SetRequest(req.WithContext(ctx))
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			var evt *zerolog.Event
			if v.Error != nil || v.Status >= 500 {
				evt = globalLogger.Error().Err(v.Error)
			} else {
				evt = globalLogger.Info()
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
