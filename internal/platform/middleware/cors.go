package middleware

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/janisto/instamonitor/internal/platform/auth"
)

// CORS allows read access to the profile API from any origin. The
// interactions endpoint is server-to-server and only needs POST.
func CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
			"traceparent",
			auth.HeaderSignature,
			auth.HeaderTimestamp,
		},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        300,
	})
}
