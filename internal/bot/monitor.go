package bot

import (
	"context"
	"time"

	"github.com/janisto/instamonitor/internal/discord"
	"github.com/janisto/instamonitor/internal/notify"
	"github.com/janisto/instamonitor/internal/platform/validate"
	"github.com/janisto/instamonitor/internal/service/profile"
)

// monitor answers with a loading embed at once and replaces it with the
// resolved profile when the lookup finishes.
func (b *Bot) monitor(kind monitorKind) handlerFunc {
	return func(ctx context.Context, in *discord.Interaction) discord.InteractionResponse {
		now := b.now()
		raw, _ := in.StringOption("username")
		username := profile.NormalizeUsername(raw)
		if username == "" {
			return ephemeral(MissingArgumentEmbed(b.usage(kind.command), now))
		}
		if !validate.IsHandle(username) {
			return ephemeral(InvalidUsernameEmbed(raw, now))
		}

		invoker := in.Invoker()
		token := in.Token
		b.background(ctx, func(ctx context.Context) {
			b.animate(ctx, token, username)

			res := b.resolver.Resolve(ctx, username)
			now := b.now()
			if !res.Success {
				b.edit(ctx, token, discord.ResponseData{
					Embeds: []discord.Embed{FetchErrorEmbed(username, res.Error, invoker, now)},
				})
				return
			}

			msg := b.edit(ctx, token, discord.ResponseData{
				Embeds: []discord.Embed{ProfileEmbed(kind, res, invoker, now)},
			})
			b.react(ctx, msg, kind.emoji, "⏰")
			b.notifier.Dispatch(ctx, monitorNotice(kind, res, now))
		})

		return reply(LoadingEmbed(username, LoadingFrames[0]))
	}
}

// animate cycles the loading frames before the lookup starts.
func (b *Bot) animate(ctx context.Context, token, username string) {
	if b.cfg.FrameDelay <= 0 {
		return
	}
	for _, frame := range LoadingFrames[1:] {
		time.Sleep(b.cfg.FrameDelay)
		b.edit(ctx, token, discord.ResponseData{Embeds: []discord.Embed{LoadingEmbed(username, frame)}})
	}
}

func monitorNotice(kind monitorKind, res profile.Result, now time.Time) string {
	var m notify.Message
	m.Title(kind.telegram).
		Field("Account", "@"+res.Username).
		Field("Full Name", DisplayName(res)).
		Field("Followers", FormatCount(res.Followers)).
		Field("Following", FormatCount(res.Following)).
		Field("Posts", FormatCount(res.Posts)).
		Field("Bio", TruncateField(res.Biography)).
		Field("Status", "Monitoring Active").
		Field("Time Started", clockTime(now))
	if res.IsSynthetic {
		m.Field("Data", "Estimated")
	}
	return m.String()
}
