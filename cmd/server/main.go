package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/janisto/instamonitor/internal/app"
	"github.com/janisto/instamonitor/internal/platform/config"
	applog "github.com/janisto/instamonitor/internal/platform/logging"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	ctx := context.Background()

	cfg, err := config.Load(os.Environ())
	if err != nil {
		applog.LogFatal(ctx, "configuration invalid", err)
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		applog.LogWarn(ctx, "ignoring LOG_LEVEL", slog.Any("error", err))
	}
	sigCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(sigCtx, cfg, Version); err != nil {
		applog.LogFatal(ctx, "server error", err)
	}

	applog.LogInfo(ctx, "server exited")
}
