package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"auctions/internal/logger"
)

// RequestLogger logs every request with its status and latency.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// let echo write the response so the status below is final
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := map[string]any{
				"method":     req.Method,
				"path":       req.URL.Path,
				"status":     res.Status,
				"latency":    time.Since(start).String(),
				"request_id": res.Header().Get(echo.HeaderXRequestID),
			}
			if user := CurrentUser(c); user != nil {
				fields["user_id"] = user.ID
			}
			if res.Status >= 500 {
				logger.Error("HTTP Request", fields)
			} else {
				logger.Info("HTTP Request", fields)
			}
			return nil
		}
	}
}
