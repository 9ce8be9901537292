package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/janisto/instamonitor/internal/discord"
	"github.com/janisto/instamonitor/internal/notify"
	"github.com/janisto/instamonitor/internal/platform/validate"
	"github.com/janisto/instamonitor/internal/service/profile"
)

// doneKind distinguishes the two completion commands.
type doneKind struct {
	command   string
	status    string
	anonymous string
	spanLabel string
	maxHours  int
	color     int
	telegram  string
}

var (
	banDone = doneKind{
		command:   "bandone",
		status:    "🔥Account Status: @%s has been banned",
		anonymous: "🔥Account Status: User has been banned",
		spanLabel: "Time alive",
		maxHours:  24,
		color:     ColorDanger,
		telegram:  "🚫 Account Banned",
	}
	unbanDone = doneKind{
		command:   "unbandone",
		status:    "✅ Monitoring Status: @%s has been unbanned",
		anonymous: "✅ Monitoring Status: User has been unbanned",
		spanLabel: "Time taken",
		maxHours:  6,
		color:     ColorSuccess,
		telegram:  "✅ Account Unbanned",
	}
)

// done reports a simulated ban or unban. With a username the follower count
// is looked up first, so the reply is deferred.
func (b *Bot) done(kind doneKind) handlerFunc {
	return func(ctx context.Context, in *discord.Interaction) discord.InteractionResponse {
		raw, _ := in.StringOption("username")
		username := profile.NormalizeUsername(raw)
		if username == "" {
			now := b.now()
			b.notifier.Dispatch(ctx, doneNotice(kind, kind.anonymous, now))
			return reply(doneEmbed(kind, kind.anonymous, now))
		}
		if !validate.IsHandle(username) {
			return ephemeral(InvalidUsernameEmbed(raw, b.now()))
		}

		token := in.Token
		b.background(ctx, func(ctx context.Context) {
			res := b.resolver.Resolve(ctx, username)
			followers := 0
			if res.Success {
				followers = res.Followers
			}
			span := FormatSpan(b.between(1, kind.maxHours), b.between(0, 59), b.between(0, 59))
			description := fmt.Sprintf(kind.status, username) +
				"\n👥 Followers: " + FormatCount(followers) +
				"\n⏱ " + kind.spanLabel + ": " + span

			now := b.now()
			b.edit(ctx, token, discord.ResponseData{Embeds: []discord.Embed{doneEmbed(kind, description, now)}})
			b.notifier.Dispatch(ctx, doneNotice(kind, description, now))
		})
		return deferred()
	}
}

func doneEmbed(kind doneKind, description string, now time.Time) discord.Embed {
	e := discord.Embed{Description: description, Color: kind.color, Footer: footer()}
	e.SetTimestamp(now)
	return e
}

func doneNotice(kind doneKind, description string, now time.Time) string {
	var m notify.Message
	m.Title(kind.telegram).Text(description).Field("Time", clockTime(now))
	return m.String()
}
