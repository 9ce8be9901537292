package main

import (
	"github.com/spf13/cobra"

	"github.com/janisto/instamonitor/internal/app"
	"github.com/janisto/instamonitor/internal/platform/config"
	applog "github.com/janisto/instamonitor/internal/platform/logging"
)

// cli carries state shared by subcommands once the root has loaded config.
type cli struct {
	environ func() []string
	cfg     config.Config
}

func newRootCmd(environ func() []string) *cobra.Command {
	c := &cli{environ: environ}

	root := &cobra.Command{
		Use:           "instamonitor",
		Short:         "Instagram profile monitor bot",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `Monitors public Instagram profiles from Discord slash commands.

Configuration is read from the environment, an optional .env file and a
key,value credentials.csv (which takes precedence).`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.environ())
			if err != nil {
				return err
			}
			if err := applog.SetLevel(cfg.LogLevel); err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}

	root.AddCommand(
		c.serveCmd(),
		c.lookupCmd(),
		c.registerCmd(),
		c.notifyCmd(),
	)
	return root
}

func (c *cli) app() (*app.App, error) {
	return app.New(c.cfg, Version)
}
