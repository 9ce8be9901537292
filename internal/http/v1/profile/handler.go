package profile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"

	applog "github.com/janisto/instamonitor/internal/platform/logging"
	"github.com/janisto/instamonitor/internal/platform/respond"
	"github.com/janisto/instamonitor/internal/platform/timeutil"
	profilesvc "github.com/janisto/instamonitor/internal/service/profile"
)

// Resolver looks up a profile. It always returns a Result.
type Resolver interface {
	Resolve(ctx context.Context, username string) profilesvc.Result
}

// Register wires profile routes into the provided group. writeBudget is the
// longest a full fallback chain can take; it replaces the server's write
// timeout for lookups. Zero keeps the server default.
func Register(g *echo.Group, resolver Resolver, writeBudget time.Duration) {
	g.GET("/profiles/:username", handleLookup(resolver, writeBudget, time.Now))
}

func handleLookup(resolver Resolver, writeBudget time.Duration, now func() time.Time) echo.HandlerFunc {
	return func(c *echo.Context) error {
		input := LookupInput{Username: profilesvc.NormalizeUsername(c.Param("username"))}
		if err := c.Validate(&input); err != nil {
			return err
		}

		ctx := c.Request().Context()
		if writeBudget > 0 {
			rc := http.NewResponseController(c.Response())
			if err := rc.SetWriteDeadline(time.Now().Add(writeBudget)); err != nil {
				applog.LogDebug(ctx, "write deadline not adjustable", slog.Any("error", err))
			}
		}
		res := resolver.Resolve(ctx, input.Username)
		if !res.Success {
			// Resolve falls back to synthetic data, so this only happens
			// with a misbehaving resolver.
			applog.LogError(ctx, "profile resolution failed", errors.New(res.Error),
				slog.String("username", input.Username))
			return respond.Error503("profile sources unavailable")
		}

		applog.LogInfo(ctx, "profile resolved",
			slog.String("username", res.Username),
			slog.String("source", res.Source),
			slog.Bool("synthetic", res.IsSynthetic))
		return respond.Negotiate(c, http.StatusOK, toHTTPProfile(res, now()))
	}
}

func toHTTPProfile(r profilesvc.Result, fetchedAt time.Time) Profile {
	return Profile{
		Username:      r.Username,
		FullName:      r.FullName,
		Biography:     r.Biography,
		Followers:     r.Followers,
		Following:     r.Following,
		Posts:         r.Posts,
		ProfilePicURL: r.ProfilePicURL,
		ExternalURL:   r.ExternalURL,
		IsPrivate:     r.IsPrivate,
		IsVerified:    r.IsVerified,
		IsSynthetic:   r.IsSynthetic,
		Source:        r.Source,
		Tier:          profilesvc.TierOf(r.Followers).String(),
		FetchedAt:     timeutil.NewTime(fetchedAt),
	}
}
