// Package interactions serves the signed Discord interactions webhook.
package interactions

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/janisto/instamonitor/internal/discord"
	"github.com/janisto/instamonitor/internal/platform/auth"
	applog "github.com/janisto/instamonitor/internal/platform/logging"
	"github.com/janisto/instamonitor/internal/platform/respond"
)

// Path is where the endpoint is mounted.
const Path = "/interactions"

// Dispatcher answers a single interaction.
type Dispatcher interface {
	Handle(ctx context.Context, in *discord.Interaction) discord.InteractionResponse
}

// Register mounts POST /interactions behind signature verification.
func Register(e *echo.Echo, key ed25519.PublicKey, d Dispatcher) {
	e.POST(Path, Handler(d), auth.Middleware(key))
}

// Handler decodes an interaction and writes the dispatcher's response.
func Handler(d Dispatcher) echo.HandlerFunc {
	return func(c *echo.Context) error {
		var in discord.Interaction
		if err := json.NewDecoder(c.Request().Body).Decode(&in); err != nil {
			return respond.Error400("malformed interaction payload")
		}

		ctx := applog.WithAttrs(c.Request().Context(),
			slog.String("interactionId", in.ID),
			slog.Int("interactionType", in.Type))
		return c.JSON(http.StatusOK, d.Handle(ctx, &in))
	}
}
