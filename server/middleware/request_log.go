package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/smartstudy/server/internal/observability"
)

// RequestLogger attaches a RequestContext to every request and logs its
// outcome. The request id is taken from X-Request-Id when present and echoed
// back.
func RequestLogger(logger *slog.Logger, metrics *observability.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			reqCtx := observability.NewRequestContextWithID(logger, req.Header.Get(echo.HeaderXRequestID), c.Path(), c.Param("user"))
			c.Response().Header().Set(echo.HeaderXRequestID, reqCtx.RequestID)
			c.SetRequest(req.WithContext(observability.WithRequestContext(req.Context(), reqCtx)))

			err := next(c)
			if err != nil {
				// Let echo write the error response so the status is final.
				c.Error(err)
			}

			status := c.Response().Status
			if metrics != nil {
				metrics.RecordRequest(c.Path(), reqCtx.Duration(), status >= 500)
			}
			attrs := []slog.Attr{
				slog.String(observability.LogFieldMethod, req.Method),
				slog.Int(observability.LogFieldStatus, status),
				slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
			}
			switch {
			case status >= 500:
				reqCtx.Warn("request failed", attrs...)
			default:
				reqCtx.Debug("request handled", attrs...)
			}
			return nil
		}
	}
}
