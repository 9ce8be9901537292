package routes

import (
	"time"

	"github.com/labstack/echo/v5"

	"github.com/janisto/instamonitor/internal/http/v1/profile"
)

// Register wires all v1 routes into the provided group.
func Register(v1 *echo.Group, resolver profile.Resolver, lookupBudget time.Duration) {
	profile.Register(v1, resolver, lookupBudget)
}
