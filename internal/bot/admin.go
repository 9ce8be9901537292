package bot

import (
	"context"
	"html"

	"github.com/janisto/instamonitor/internal/discord"
	applog "github.com/janisto/instamonitor/internal/platform/logging"
)

// Replies of the Telegram relay command.
const (
	NotifySent   = "✅ Telegram notification sent!"
	NotifyFailed = "❌ Failed to send Telegram notification."
)

func (b *Bot) telegramNotify(ctx context.Context, in *discord.Interaction) discord.InteractionResponse {
	ev := applog.CommandAudit{Command: "telegram_notify", GuildID: in.GuildID}
	if u := in.Invoker(); u != nil {
		ev.UserID = u.ID
	}

	if !in.InvokerPermissions().Has(discord.PermAdministrator) {
		ev.Result = "denied"
		applog.LogCommandAudit(ctx, ev)
		return ephemeral(PermissionDeniedEmbed(b.now()))
	}

	text, _ := in.StringOption("message")
	if text == "" {
		return ephemeral(MissingArgumentEmbed(b.usage("telegram_notify"), b.now()))
	}

	token := in.Token
	b.background(ctx, func(ctx context.Context) {
		content := NotifyFailed
		ev.Result = "failed"
		if b.notifier.Send(ctx, "<b>Discord Bot Notification</b>\n"+html.EscapeString(text)) {
			content = NotifySent
			ev.Result = "sent"
		}
		ev.Details = map[string]any{"length": len(text)}
		applog.LogCommandAudit(ctx, ev)
		b.edit(ctx, token, discord.ResponseData{Content: content})
	})
	return deferred()
}
