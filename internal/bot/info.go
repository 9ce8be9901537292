package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/janisto/instamonitor/internal/bot/catalog"
	"github.com/janisto/instamonitor/internal/discord"
	"github.com/janisto/instamonitor/internal/notify"
)

const catalogBlurb = "Monitor Instagram accounts for ban/unban simulations with real data"

func (b *Bot) uptime() string {
	return b.now().Sub(b.started).Truncate(time.Second).String()
}

func (b *Bot) ping(ctx context.Context, in *discord.Interaction) discord.InteractionResponse {
	latency := fmt.Sprintf("%dms", b.latency(in).Milliseconds())
	uptime := b.uptime()

	e := discord.Embed{
		Title:       "🏓 Pong!",
		Description: "Bot is running smoothly!\n\n**Latency:** `" + latency + "`\n**Uptime:** `" + uptime + "`",
		Color:       ColorSuccess,
		Author:      author(in.Invoker()),
		Footer:      footer(),
	}
	e.SetTimestamp(b.now())

	var m notify.Message
	m.Title("🏓 Pong!").
		Text("Bot is running smoothly!").
		Code("Latency", latency).
		Code("Uptime", uptime)
	b.notifier.Dispatch(ctx, m.String())

	return reply(e)
}

func (b *Bot) commands(_ context.Context, in *discord.Interaction) discord.InteractionResponse {
	e := discord.Embed{
		Title:       "🤖 Instagram Monitor Bot Commands",
		Description: catalogBlurb,
		Color:       ColorPurple,
		Author:      author(in.Invoker()),
		Footer:      footer(),
	}
	e.SetTimestamp(b.now())
	for _, cmd := range b.catalog.Commands {
		value := cmd.Description
		if cmd.Details != "" {
			value += "\n" + cmd.Details
		}
		if cmd.AdminOnly {
			value += "\n*Administrators only*"
		}
		e.AddField(cmd.Emoji+" **"+cmd.Usage()+"**", value, false)
	}
	return reply(e)
}

var helpSections = []struct {
	group string
	title string
}{
	{catalog.GroupUtility, "🔧 **Utility Commands**"},
	{catalog.GroupMonitoring, "📡 **Monitoring Commands**"},
	{catalog.GroupAction, "✅ **Action Commands**"},
	{catalog.GroupDiagnostics, "🛠️ **Diagnostics**"},
	{catalog.GroupAdmin, "🔐 **Admin Commands**"},
}

func (b *Bot) help(_ context.Context, in *discord.Interaction) discord.InteractionResponse {
	e := discord.Embed{
		Title:       "🤖 Instagram Monitor Bot Help",
		Description: catalogBlurb,
		Color:       ColorPurple,
		Author:      author(in.Invoker()),
		Footer:      footer(),
	}
	e.SetTimestamp(b.now())
	for _, s := range helpSections {
		cmds := b.catalog.Group(s.group)
		if len(cmds) == 0 {
			continue
		}
		lines := make([]string, len(cmds))
		for i, cmd := range cmds {
			lines[i] = "`" + cmd.Usage() + "` - " + cmd.Description
		}
		e.AddField(s.title, strings.Join(lines, "\n"), false)
	}
	e.AddField("💡 **Usage Example**",
		"```/monitorban username:instagram_username```\nThis will fetch real Instagram data and start monitoring.", false)
	return reply(e)
}

func (b *Bot) stats(_ context.Context, in *discord.Interaction) discord.InteractionResponse {
	created := "unknown"
	if t, err := discord.SnowflakeTime(in.ApplicationID); err == nil {
		created = t.UTC().Format(time.DateOnly)
	}

	e := discord.Embed{
		Title:       "📊 Bot Statistics",
		Description: "Instagram Monitor Bot Information",
		Color:       ColorDark,
		Author:      author(in.Invoker()),
		Footer:      footer(),
	}
	e.SetTimestamp(b.now())
	e.AddField("🤖 **Bot Name**", "`"+b.cfg.Name+"`", true).
		AddField("🆔 **Application ID**", "`"+in.ApplicationID+"`", true).
		AddField("📅 **Created**", "`"+created+"`", true).
		AddField("⚡ **Latency**", fmt.Sprintf("`%dms`", b.latency(in).Milliseconds()), true).
		AddField("⏱️ **Uptime**", "`"+b.uptime()+"`", true).
		AddField("🔧 **Commands**", fmt.Sprintf("`%d`", len(b.catalog.Commands)), true).
		AddField("📡 **Status**", "🟢 **Online**", true).
		AddField("🔎 **Profile Sources**", "`"+strings.Join(b.resolver.Sources(), " → ")+"`", true).
		AddField("💻 **Library**", "`echo/v5`", true)
	return reply(e)
}

// permissionLines lists the channel permissions the bot relies on.
func permissionLines(p discord.Permissions) string {
	checks := []struct {
		bit  discord.Permissions
		name string
	}{
		{discord.PermSendMessages, "Send Messages"},
		{discord.PermEmbedLinks, "Embed Links"},
		{discord.PermUseExternalEmojis, "Use External Emojis"},
		{discord.PermAddReactions, "Add Reactions"},
		{discord.PermReadMessageHistory, "Read Message History"},
		{discord.PermViewChannel, "View Channel"},
	}
	lines := make([]string, len(checks))
	for i, c := range checks {
		mark := "❌"
		if p.Has(c.bit) {
			mark = "✅"
		}
		lines[i] = mark + " " + c.name
	}
	return strings.Join(lines, "\n")
}

// test exercises sending, editing and reacting.
func (b *Bot) test(ctx context.Context, in *discord.Interaction) discord.InteractionResponse {
	e := discord.Embed{
		Title:       "✅ Embed Test",
		Description: "Bot can send embeds!",
		Color:       ColorSuccess,
		Footer:      footer("Test"),
	}
	e.SetTimestamp(b.now())
	e.AddField("🎯 **Status**", "Working", true).
		AddField("📊 **Permissions**", permissionLines(in.AppPermissions), true)

	token := in.Token
	b.background(ctx, func(ctx context.Context) {
		msg := b.edit(ctx, token, discord.ResponseData{
			Content: "🎉 All tests passed! Bot can edit messages.",
			Embeds:  []discord.Embed{e},
		})
		b.react(ctx, msg, "✅", "🎯")
	})

	return discord.InteractionResponse{
		Type: discord.ResponseChannelMessage,
		Data: &discord.ResponseData{
			Content: "✅ Simple message test - Bot can send messages!",
			Embeds:  []discord.Embed{e},
		},
	}
}

func (b *Bot) debug(_ context.Context, in *discord.Interaction) discord.InteractionResponse {
	server := "Direct message"
	if in.GuildID != "" {
		server = "**Server ID:** " + in.GuildID + "\n**Channel ID:** " + in.ChannelID
	}
	telegram := "disabled"
	if b.notifier.Enabled() {
		telegram = "enabled"
	}
	reactions := "disabled"
	if b.messenger.CanAuthorize() {
		reactions = "enabled"
	}

	e := discord.Embed{
		Title:       "🔧 Bot Debug Information",
		Description: "Detailed bot configuration and permissions",
		Color:       ColorDark,
		Author:      author(in.Invoker()),
		Footer:      footer("Debug"),
	}
	e.SetTimestamp(b.now())
	e.AddField("🤖 **Bot Information**", fmt.Sprintf("**Name:** %s\n**Application ID:** %s\n**Latency:** %dms",
		b.cfg.Name, in.ApplicationID, b.latency(in).Milliseconds()), false).
		AddField("🏠 **Server Information**", server, false).
		AddField("🔐 **Bot Permissions**", permissionLines(in.AppPermissions), false).
		AddField("⚙️ **Configuration**", fmt.Sprintf(
			"**Commands:** %d\n**Transport:** HTTP interactions\n**Profile sources:** %s\n**Telegram:** %s\n**Reactions:** %s",
			len(b.catalog.Commands), strings.Join(b.resolver.Sources(), ", "), telegram, reactions), false)
	return ephemeral(e)
}
