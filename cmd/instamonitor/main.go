// Command instamonitor runs the monitor bot and its operator tooling.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	applog "github.com/janisto/instamonitor/internal/platform/logging"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Environ).ExecuteContext(ctx); err != nil {
		applog.LogError(ctx, "command failed", err)
		cancel()
		os.Exit(1)
	}
}
