// Package middleware provides Echo middleware for logging and security.
package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// routeUpstreams maps each gateway route pattern to the upstream it forwards
// to, so request logs show which backend a slow or failing call went through.
var routeUpstreams = map[string]string{
	"/extract":                   "extractor",
	"/extract-batch":             "extractor",
	"/extractT/hashtag/:hashtag": "extractort",
	"/extractT/user/:username":   "extractort",
	"/health":                    "extractor,extractort",
}

// RequestLogger returns an Echo middleware that logs each request with slog.
// The matched route pattern is logged instead of the raw path so hashtag and
// username values don't fan out the log keys; forwarding routes also carry
// the upstream they target.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			attrs := []any{
				"method", req.Method,
				"route", c.Path(),
				"path", req.URL.Path,
				"status", res.Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", res.Header().Get(echo.HeaderXRequestID),
				"remote_ip", c.RealIP(),
				"bytes_out", res.Size,
			}
			if upstream, ok := routeUpstreams[c.Path()]; ok {
				attrs = append(attrs, "upstream", upstream)
			}

			logger.Info("request", attrs...)

			return err
		}
	}
}
