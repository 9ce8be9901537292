// Package app is the composition root: it turns a Config into the wired
// profile resolver, notifier, bot and HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/janisto/instamonitor/internal/bot"
	"github.com/janisto/instamonitor/internal/bot/catalog"
	"github.com/janisto/instamonitor/internal/discord"
	"github.com/janisto/instamonitor/internal/http/health"
	"github.com/janisto/instamonitor/internal/http/interactions"
	"github.com/janisto/instamonitor/internal/http/v1/routes"
	"github.com/janisto/instamonitor/internal/instagram"
	"github.com/janisto/instamonitor/internal/notify"
	"github.com/janisto/instamonitor/internal/platform/auth"
	"github.com/janisto/instamonitor/internal/platform/config"
	applog "github.com/janisto/instamonitor/internal/platform/logging"
	appmiddleware "github.com/janisto/instamonitor/internal/platform/middleware"
	"github.com/janisto/instamonitor/internal/platform/respond"
	"github.com/janisto/instamonitor/internal/platform/validate"
	profilesvc "github.com/janisto/instamonitor/internal/service/profile"
)

// App owns every long-lived dependency. Close releases them.
type App struct {
	cfg     config.Config
	version string

	session  *instagram.Session
	browser  *instagram.Browser
	resolver *profilesvc.Resolver
	telegram *notify.Telegram
	discord  *discord.Client
	catalog  *catalog.Catalog
	bot      *bot.Bot
}

// New wires an App from cfg. Nothing touches the network until used.
func New(cfg config.Config, version string) (*App, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load command catalog: %w", err)
	}

	a := &App{cfg: cfg, version: version, catalog: cat}
	ig := cfg.Instagram

	a.session = instagram.NewSession(instagram.SessionConfig{
		CSRFToken: ig.CSRFToken,
		SessionID: ig.SessionID,
		Origins:   []string{ig.WebBase, ig.MobileBase},
		Timeout:   ig.Timeout,
	})
	fetchers := []profilesvc.Fetcher{
		instagram.NewWebAPI(a.session, instagram.WithBaseURL(ig.WebBase)),
		instagram.NewMobileAPI(a.session, instagram.WithBaseURL(ig.MobileBase)),
		instagram.NewScrape(instagram.ScrapeConfig{
			Attempts: ig.ScrapeAttempts,
			Timeout:  ig.Timeout,
			Backoff:  ig.ScrapeBackoff,
		}, instagram.WithBaseURL(ig.WebBase)),
	}
	if ig.BrowserEnabled {
		a.browser = instagram.NewBrowser(instagram.BrowserConfig{
			ControlURL: ig.BrowserControlURL,
			Bin:        ig.BrowserBin,
			Timeout:    ig.Timeout,
		}, instagram.WithBaseURL(ig.WebBase))
		fetchers = append(fetchers, a.browser)
	}
	a.resolver = profilesvc.NewResolver(fetchers)

	a.telegram = notify.NewTelegram(notify.TelegramConfig{
		Token:   cfg.Telegram.Token,
		ChatID:  cfg.Telegram.ChatID,
		APIBase: cfg.Telegram.APIBase,
	})
	a.discord = discord.NewClient(discord.ClientConfig{
		ApplicationID: cfg.Discord.ApplicationID,
		BotToken:      cfg.Discord.Token,
		APIBase:       cfg.Discord.APIBase,
		Retries:       2,
	})
	a.bot = bot.New(bot.Config{
		Name:       cfg.Bot.Name,
		FrameDelay: cfg.Bot.FrameDelay,
	}, cat, a.resolver, a.telegram, a.discord)

	return a, nil
}

// Resolver returns the profile resolver.
func (a *App) Resolver() *profilesvc.Resolver { return a.resolver }

// Telegram returns the notification relay.
func (a *App) Telegram() *notify.Telegram { return a.telegram }

// Server builds the HTTP server. The interactions endpoint is mounted only
// when a Discord public key is configured.
func (a *App) Server() (*echo.Echo, error) {
	e := echo.New()
	e.Validator = validate.New()
	e.HTTPErrorHandler = respond.NewHTTPErrorHandler()
	e.IPExtractor = echo.ExtractIPFromRealIPHeader()
	e.Logger = applog.Logger()

	e.Use(
		appmiddleware.Security(interactions.Path),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		middleware.BodyLimit(1<<20),
		applog.RequestLogger(),
		applog.AccessLogger("/health"),
		respond.Recoverer(),
	)

	mounted := false
	if a.cfg.Discord.PublicKey != "" {
		key, err := auth.ParsePublicKey(a.cfg.Discord.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("discord public key: %w", err)
		}
		interactions.Register(e, key, a.bot)
		mounted = true
	}

	e.GET("/health", health.Handler(health.Info{
		Version:      a.version,
		Sources:      a.resolver.Sources(),
		Interactions: mounted,
		Telegram:     a.telegram.Enabled(),
	}))
	routes.Register(e.Group("/v1"), a.resolver, lookupBudget(a.cfg.Instagram))

	return e, nil
}

// lookupSlack covers response encoding and scheduling on top of the
// sources' own bounds.
const lookupSlack = 5 * time.Second

// lookupBudget is the worst case for one Resolve: every source runs to its
// timeout and the scrape waits out each backoff between tries.
func lookupBudget(ig config.Instagram) time.Duration {
	timeout := ig.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	attempts := ig.ScrapeAttempts
	if attempts <= 0 {
		attempts = 3
	}
	sources := 2 + attempts
	if ig.BrowserEnabled {
		sources++
	}
	budget := time.Duration(sources)*timeout + time.Duration(attempts-1)*ig.ScrapeBackoff
	return budget + lookupSlack
}

// RegisterCommands publishes the command catalog, to the configured guild
// when one is set and globally otherwise.
func (a *App) RegisterCommands(ctx context.Context) ([]discord.ApplicationCommand, error) {
	if a.cfg.Discord.ApplicationID == "" {
		return nil, errors.New("DISCORD_APPLICATION_ID is required")
	}
	return a.discord.RegisterCommands(ctx, a.cfg.Discord.GuildID, a.catalog.ApplicationCommands())
}

// Close waits for background command work and notifications, bounded by
// ctx, then releases the Instagram session and browser.
func (a *App) Close(ctx context.Context) error {
	drained := make(chan struct{})
	go func() {
		a.bot.Wait()
		a.telegram.Wait()
		close(drained)
	}()

	var errs []error
	select {
	case <-drained:
	case <-ctx.Done():
		applog.LogWarn(ctx, "shutdown deadline reached with background work pending")
		errs = append(errs, ctx.Err())
	}

	a.session.Close()
	if a.browser != nil {
		if err := a.browser.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogStartup records the effective feature set.
func (a *App) LogStartup(ctx context.Context, addr string) {
	applog.LogInfo(ctx, "server starting",
		slog.String("addr", addr),
		slog.String("version", a.version),
		slog.Any("sources", a.resolver.Sources()),
		slog.Bool("interactions", a.cfg.Discord.PublicKey != ""),
		slog.Bool("telegram", a.telegram.Enabled()),
		slog.Bool("reactions", a.discord.CanAuthorize()),
		slog.Duration("frameDelay", a.cfg.Bot.FrameDelay))
}
