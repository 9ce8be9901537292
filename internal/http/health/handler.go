// Package health serves the liveness endpoint.
package health

import (
	"net/http"

	"github.com/labstack/echo/v5"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status       string   `json:"status"`
	Version      string   `json:"version"`
	Sources      []string `json:"sources"`
	Interactions bool     `json:"interactions"`
	Telegram     bool     `json:"telegram"`
}

// Info describes the wiring reported by the endpoint.
type Info struct {
	Version      string
	Sources      []string
	Interactions bool
	Telegram     bool
}

// Handler reports the service as healthy along with which optional features
// are enabled.
func Handler(info Info) echo.HandlerFunc {
	sources := append([]string{}, info.Sources...)
	return func(c *echo.Context) error {
		return c.JSON(http.StatusOK, Response{
			Status:       "healthy",
			Version:      info.Version,
			Sources:      sources,
			Interactions: info.Interactions,
			Telegram:     info.Telegram,
		})
	}
}
