// Package notify mirrors bot events to a Telegram chat.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gojektech/heimdall/v6/httpclient"

	applog "github.com/janisto/instamonitor/internal/platform/logging"
)

// DefaultAPIBase is the Telegram Bot API origin.
const DefaultAPIBase = "https://api.telegram.org"

// TelegramConfig configures the relay. Without both Token and ChatID every
// send is a no-op that reports false.
type TelegramConfig struct {
	Token   string
	ChatID  string
	APIBase string
	Timeout time.Duration
}

// Telegram posts HTML-formatted messages. Sends are never retried and
// failures are logged, not returned.
type Telegram struct {
	cfg    TelegramConfig
	client *httpclient.Client
	wg     sync.WaitGroup
}

// NewTelegram returns a relay for cfg.
func NewTelegram(cfg TelegramConfig) *Telegram {
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Telegram{
		cfg: cfg,
		client: httpclient.NewClient(
			httpclient.WithHTTPTimeout(cfg.Timeout),
			httpclient.WithRetryCount(0),
		),
	}
}

// Enabled reports whether both the token and the chat are configured.
func (t *Telegram) Enabled() bool {
	return t.cfg.Token != "" && t.cfg.ChatID != ""
}

// Send delivers text and reports whether Telegram accepted it.
func (t *Telegram) Send(ctx context.Context, text string) bool {
	if !t.Enabled() {
		applog.LogWarn(ctx, "telegram bot token or chat id not set")
		return false
	}

	form := url.Values{}
	form.Set("chat_id", t.cfg.ChatID)
	form.Set("text", text)
	form.Set("parse_mode", "HTML")

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.cfg.APIBase, t.cfg.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		applog.LogError(ctx, "telegram notification error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		applog.LogError(ctx, "telegram notification error", t.redact(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		applog.LogWarn(ctx, "telegram notification failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
		return false
	}

	applog.LogInfo(ctx, "telegram notification sent")
	return true
}

// Dispatch sends text in the background, detached from ctx cancellation.
func (t *Telegram) Dispatch(ctx context.Context, text string) {
	if !t.Enabled() {
		return
	}
	ctx = context.WithoutCancel(ctx)
	t.wg.Go(func() {
		t.Send(ctx, text)
	})
}

// Wait blocks until every dispatched send has finished.
func (t *Telegram) Wait() {
	t.wg.Wait()
}

// redact strips the bot token, which is part of the request URL, from err.
func (t *Telegram) redact(err error) error {
	return errors.New(strings.ReplaceAll(err.Error(), t.cfg.Token, "<token>"))
}
