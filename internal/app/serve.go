package app

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/janisto/instamonitor/internal/platform/config"
	applog "github.com/janisto/instamonitor/internal/platform/logging"
)

// shutdownGrace bounds both the HTTP drain and the wait for background work.
const shutdownGrace = 10 * time.Second

// Run wires an App from cfg and serves until ctx is cancelled. Both
// binaries start the server through it.
func Run(ctx context.Context, cfg config.Config, version string) error {
	if cfg.Discord.PublicKey == "" {
		applog.LogWarn(ctx, "DISCORD_PUBLIC_KEY not set, interactions endpoint disabled")
	}
	a, err := New(cfg, version)
	if err != nil {
		return err
	}
	return a.Serve(ctx)
}

// Serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests and background work before releasing resources. Profile lookups
// extend their own write deadline past WriteTimeout.
func (a *App) Serve(ctx context.Context) error {
	e, err := a.Server()
	if err != nil {
		return err
	}

	addr := ":" + a.cfg.Port
	a.LogStartup(ctx, addr)

	sc := echo.StartConfig{
		Address:         addr,
		GracefulTimeout: shutdownGrace,
		BeforeServeFunc: func(s *http.Server) error {
			s.ReadTimeout = 5 * time.Second
			s.ReadHeaderTimeout = 2 * time.Second
			s.WriteTimeout = 10 * time.Second
			s.IdleTimeout = 60 * time.Second
			s.MaxHeaderBytes = 64 << 10
			return nil
		},
	}
	serveErr := sc.Start(ctx, e)

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
	defer cancel()
	if err := a.Close(closeCtx); err != nil && serveErr == nil {
		return err
	}
	return serveErr
}
