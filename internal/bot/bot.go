// Package bot implements the slash command handlers: it resolves profiles,
// renders embeds, and mirrors events to Telegram.
package bot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/janisto/instamonitor/internal/bot/catalog"
	"github.com/janisto/instamonitor/internal/discord"
	applog "github.com/janisto/instamonitor/internal/platform/logging"
	"github.com/janisto/instamonitor/internal/service/profile"
)

// ProfileResolver looks up profiles; it never fails.
type ProfileResolver interface {
	Resolve(ctx context.Context, username string) profile.Result
	Sources() []string
}

// Notifier relays HTML messages to a secondary channel.
type Notifier interface {
	Enabled() bool
	Send(ctx context.Context, text string) bool
	Dispatch(ctx context.Context, text string)
}

// Messenger edits interaction responses and reacts to messages.
type Messenger interface {
	EditOriginal(ctx context.Context, token string, data discord.ResponseData) (*discord.Message, error)
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error
	CanAuthorize() bool
}

// Config holds the bot's presentation settings.
type Config struct {
	// Name is shown by /stats and /debug.
	Name string
	// FrameDelay paces the loading animation. Zero disables it.
	FrameDelay time.Duration
}

// Bot dispatches interactions to command handlers. Work that outlives the
// HTTP response runs on tracked goroutines; Wait blocks until it is done.
type Bot struct {
	cfg       Config
	resolver  ProfileResolver
	notifier  Notifier
	messenger Messenger
	catalog   *catalog.Catalog

	now     func() time.Time
	started time.Time

	randMu sync.Mutex
	rand   profile.RandSource

	wg sync.WaitGroup
}

// Option configures a Bot.
type Option func(*Bot)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(b *Bot) {
		if now != nil {
			b.now = now
		}
	}
}

// WithRand overrides the random source used for simulated durations.
func WithRand(src profile.RandSource) Option {
	return func(b *Bot) {
		if src != nil {
			b.rand = src
		}
	}
}

// New returns a Bot.
func New(cfg Config, cat *catalog.Catalog, resolver ProfileResolver, notifier Notifier, messenger Messenger, opts ...Option) *Bot {
	if cfg.Name == "" {
		cfg.Name = FooterBrand
	}
	b := &Bot{
		cfg:       cfg,
		resolver:  resolver,
		notifier:  notifier,
		messenger: messenger,
		catalog:   cat,
		now:       time.Now,
		rand:      profile.DefaultRand(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.started = b.now()
	return b
}

// Wait blocks until all background command work has finished.
func (b *Bot) Wait() {
	b.wg.Wait()
}

type handlerFunc func(ctx context.Context, in *discord.Interaction) discord.InteractionResponse

func (b *Bot) handlers() map[string]handlerFunc {
	return map[string]handlerFunc{
		"ping":            b.ping,
		"monitorban":      b.monitor(banMonitor),
		"monitorunban":    b.monitor(unbanMonitor),
		"bandone":         b.done(banDone),
		"unbandone":       b.done(unbanDone),
		"commands":        b.commands,
		"help":            b.help,
		"stats":           b.stats,
		"test":            b.test,
		"debug":           b.debug,
		"telegram_notify": b.telegramNotify,
	}
}

// Handle answers one interaction. Application commands are routed by name.
func (b *Bot) Handle(ctx context.Context, in *discord.Interaction) discord.InteractionResponse {
	if in.Type == discord.InteractionPing {
		return discord.InteractionResponse{Type: discord.ResponsePong}
	}
	if in.Data == nil {
		return ephemeral(ErrorEmbed("Unsupported Interaction", "This interaction type is not supported.", b.now()))
	}

	name := in.Data.Name
	ctx = applog.WithAttrs(ctx,
		slog.String("command", name),
		slog.String("guildId", in.GuildID),
		slog.String("channelId", in.ChannelID))
	if u := in.Invoker(); u != nil {
		ctx = applog.WithAttrs(ctx, slog.String("userId", u.ID))
	}
	applog.LogInfo(ctx, "command received")

	h, ok := b.handlers()[name]
	if !ok {
		applog.LogWarn(ctx, "unknown command")
		return ephemeral(UnknownCommandEmbed(name, b.now()))
	}
	return h(ctx, in)
}

// background runs fn detached from the request's cancellation.
func (b *Bot) background(ctx context.Context, fn func(ctx context.Context)) {
	ctx = context.WithoutCancel(ctx)
	b.wg.Go(func() {
		defer func() {
			if rec := recover(); rec != nil {
				applog.LogError(ctx, "background command work panicked", nil, slog.Any("panic", rec))
			}
		}()
		fn(ctx)
	})
}

func (b *Bot) edit(ctx context.Context, token string, data discord.ResponseData) *discord.Message {
	msg, err := b.messenger.EditOriginal(ctx, token, data)
	if err != nil {
		applog.LogError(ctx, "edit original response failed", err)
		return nil
	}
	return msg
}

func (b *Bot) react(ctx context.Context, msg *discord.Message, emojis ...string) {
	if msg == nil || msg.ID == "" || !b.messenger.CanAuthorize() {
		return
	}
	for _, e := range emojis {
		if err := b.messenger.AddReaction(ctx, msg.ChannelID, msg.ID, e); err != nil {
			applog.LogWarn(ctx, "add reaction failed", slog.String("emoji", e), slog.String("error", err.Error()))
			return
		}
	}
}

func (b *Bot) between(lo, hi int) int {
	b.randMu.Lock()
	defer b.randMu.Unlock()
	return profile.Between(b.rand, lo, hi)
}

func (b *Bot) usage(name string) string {
	if cmd, ok := b.catalog.Lookup(name); ok {
		return cmd.Usage()
	}
	return "/" + name
}

func (b *Bot) latency(in *discord.Interaction) time.Duration {
	created, err := discord.SnowflakeTime(in.ID)
	if err != nil {
		return 0
	}
	d := b.now().Sub(created)
	if d < 0 {
		return 0
	}
	return d
}

func reply(embeds ...discord.Embed) discord.InteractionResponse {
	return discord.InteractionResponse{
		Type: discord.ResponseChannelMessage,
		Data: &discord.ResponseData{Embeds: embeds},
	}
}

func ephemeral(embeds ...discord.Embed) discord.InteractionResponse {
	return discord.InteractionResponse{
		Type: discord.ResponseChannelMessage,
		Data: &discord.ResponseData{Embeds: embeds, Flags: discord.MessageFlagEphemeral},
	}
}

func deferred() discord.InteractionResponse {
	return discord.InteractionResponse{Type: discord.ResponseDeferredChannelMessage}
}
