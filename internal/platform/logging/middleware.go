package logging

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v5"
)

// RequestLogger stores a logger carrying trace and request identifiers in
// the request context. It must run after the request ID middleware.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			header := c.Request().Header.Get(traceparentHeader)
			reqID, _ := c.Get("request_id").(string)

			ctx := c.Request().Context()
			ctx = contextWithTraceID(ctx, correlationID(header, reqID))
			ctx = contextWithLogger(ctx, loggerWithTrace(Logger(), header, reqID))
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// AccessLogger logs one summary per request once the handler returns.
// Server errors log at error level, client errors at warn. Requests under
// quietPaths (uptime checks) log at debug.
func AccessLogger(quietPaths ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			start := time.Now()
			err := next(c)

			req := c.Request()
			status, size := 0, int64(0)
			if resp, uerr := echo.UnwrapResponse(c.Response()); uerr == nil {
				status, size = resp.Status, resp.Size
			}

			LoggerFromContext(req.Context()).LogAttrs(req.Context(), accessLevel(req.URL.Path, status, quietPaths),
				"request completed",
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.String("remoteIp", c.RealIP()),
				slog.String("userAgent", req.UserAgent()),
				slog.Int("status", status),
				slog.Int64("bytes", size),
				slog.Duration("duration", time.Since(start)),
			)
			return err
		}
	}
}

func accessLevel(path string, status int, quietPaths []string) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	}
	for _, p := range quietPaths {
		if strings.HasPrefix(path, p) {
			return slog.LevelDebug
		}
	}
	return slog.LevelInfo
}
