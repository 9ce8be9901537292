package bot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/janisto/instamonitor/internal/bot/catalog"
	"github.com/janisto/instamonitor/internal/discord"
	"github.com/janisto/instamonitor/internal/service/profile"
)

type fakeResolver struct {
	mu     sync.Mutex
	result profile.Result
	calls  []string
}

func (f *fakeResolver) Resolve(_ context.Context, username string) profile.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, username)
	res := f.result
	if res.Username == "" {
		res.Username = username
	}
	return res
}

func (f *fakeResolver) Sources() []string { return []string{"web_api", "mobile_api", "scrape"} }

type fakeNotifier struct {
	mu       sync.Mutex
	enabled  bool
	ok       bool
	sent     []string
	dispatch []string
}

func (f *fakeNotifier) Enabled() bool { return f.enabled }

func (f *fakeNotifier) Send(_ context.Context, text string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return f.ok
}

func (f *fakeNotifier) Dispatch(_ context.Context, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dispatch = append(f.dispatch, text)
}

func (f *fakeNotifier) dispatched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.dispatch...)
}

type reaction struct {
	channel, message, emoji string
}

type fakeMessenger struct {
	mu        sync.Mutex
	authorize bool
	edits     []discord.ResponseData
	tokens    []string
	reactions []reaction
}

func (f *fakeMessenger) EditOriginal(_ context.Context, token string, data discord.ResponseData) (*discord.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	f.edits = append(f.edits, data)
	return &discord.Message{ID: "m1", ChannelID: "c1"}, nil
}

func (f *fakeMessenger) AddReaction(_ context.Context, channelID, messageID, emoji string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reactions = append(f.reactions, reaction{channelID, messageID, emoji})
	return nil
}

func (f *fakeMessenger) CanAuthorize() bool { return f.authorize }

func (f *fakeMessenger) lastEdit(t *testing.T) discord.ResponseData {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.edits) == 0 {
		t.Fatal("expected at least one edit")
	}
	return f.edits[len(f.edits)-1]
}

// fixedRand returns the lower bound of every range.
type fixedRand struct{}

func (fixedRand) IntN(int) int { return 0 }

var testNow = time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)

type harness struct {
	bot       *Bot
	resolver  *fakeResolver
	notifier  *fakeNotifier
	messenger *fakeMessenger
}

func newHarness(t *testing.T, res profile.Result) *harness {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	h := &harness{
		resolver:  &fakeResolver{result: res},
		notifier:  &fakeNotifier{enabled: true, ok: true},
		messenger: &fakeMessenger{authorize: true},
	}
	h.bot = New(Config{Name: "monitor"}, cat, h.resolver, h.notifier, h.messenger,
		WithClock(func() time.Time { return testNow }),
		WithRand(fixedRand{}))
	return h
}

func command(name string, options map[string]string) *discord.Interaction {
	in := &discord.Interaction{
		ID:            "175928847299117063",
		ApplicationID: "175928847299117063",
		Type:          discord.InteractionApplicationCommand,
		Token:         "tok",
		GuildID:       "g1",
		ChannelID:     "c1",
		Member:        &discord.Member{User: &discord.User{ID: "u1", Username: "jane"}},
		Data:          &discord.CommandData{Name: name},
	}
	for k, v := range options {
		in.Data.Options = append(in.Data.Options, discord.CommandOption{Name: k, Type: discord.OptionString, Value: v})
	}
	return in
}

func realProfile() profile.Result {
	return profile.Result{
		Success:       true,
		Username:      "natgeo",
		FullName:      "National Geographic",
		Biography:     "Experience the world",
		Followers:     283_000_000,
		Following:     150,
		Posts:         30_000,
		ProfilePicURL: "https://cdn.example/p.jpg",
		IsVerified:    true,
		Source:        "web_api",
	}
}

func fieldValue(e discord.Embed, name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}
