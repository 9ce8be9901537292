package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/janisto/instamonitor/internal/app"
	"github.com/janisto/instamonitor/internal/notify"
	profilesvc "github.com/janisto/instamonitor/internal/service/profile"
)

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (interactions webhook and profile API)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), c.cfg, Version)
		},
	}
}

func (c *cli) lookupCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "lookup <username>",
		Short: "Resolve a profile through the configured sources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.app()
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			res := a.Resolver().Resolve(cmd.Context(), args[0])
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			_, err = fmt.Fprint(out, summary(res))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw result as JSON")
	return cmd
}

func summary(r profilesvc.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s @%s (%s)\n", profilesvc.TierOf(r.Followers).Glyph(), r.Username, r.FullName)
	fmt.Fprintf(&b, "followers: %d\nfollowing: %d\nposts: %d\n", r.Followers, r.Following, r.Posts)
	fmt.Fprintf(&b, "private: %t\nverified: %t\nsource: %s\n", r.IsPrivate, r.IsVerified, r.Source)
	if r.IsSynthetic {
		b.WriteString("note: every source failed, figures are estimated\n")
	}
	return b.String()
}

func (c *cli) registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register-commands",
		Short: "Publish the slash command catalog to Discord",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.app()
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			cmds, err := a.RegisterCommands(cmd.Context())
			if err != nil {
				return err
			}
			scope := "globally"
			if c.cfg.Discord.GuildID != "" {
				scope = "in guild " + c.cfg.Discord.GuildID
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "registered %d commands %s\n", len(cmds), scope)
			return err
		},
	}
}

func (c *cli) notifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notify <message>",
		Short: "Send a message to the configured Telegram chat",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.app()
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			tg := a.Telegram()
			if !tg.Enabled() {
				return errors.New("telegram is not configured: set TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID")
			}
			msg := new(notify.Message).Title("Instagram Monitor").Text(strings.Join(args, " "))
			if !tg.Send(cmd.Context(), msg.String()) {
				return errors.New("telegram rejected the message")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "sent")
			return err
		},
	}
}
