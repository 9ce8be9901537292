package logging

import (
	"context"
	"log/slog"
)

// CommandAudit describes one privileged or externally visible bot action.
type CommandAudit struct {
	Command string
	UserID  string
	GuildID string
	Target  string
	Result  string
	Details map[string]any
}

// LogCommandAudit logs a structured audit record for a chat command.
func LogCommandAudit(ctx context.Context, ev CommandAudit) {
	LoggerFromContext(ctx).LogAttrs(ctx, slog.LevelInfo, "Audit event",
		slog.String("audit.command", ev.Command),
		slog.String("audit.user_id", ev.UserID),
		slog.String("audit.guild_id", ev.GuildID),
		slog.String("audit.target", ev.Target),
		slog.String("audit.result", ev.Result),
		slog.Any("audit.details", ev.Details),
	)
}
