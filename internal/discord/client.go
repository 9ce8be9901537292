package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gojektech/heimdall/v6"
	"github.com/gojektech/heimdall/v6/httpclient"
)

// DefaultAPIBase is the versioned REST origin.
const DefaultAPIBase = "https://discord.com/api/v10"

// ErrNoBotToken is returned by calls that need bot authorization when none
// is configured.
var ErrNoBotToken = errors.New("discord: bot token not configured")

// APIError is a non-2xx REST response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord: HTTP %d: %s", e.Status, e.Body)
}

// ClientConfig configures the REST client.
type ClientConfig struct {
	ApplicationID string
	BotToken      string
	APIBase       string
	Timeout       time.Duration
	// Retries is the number of extra attempts on transport errors and 5xx.
	Retries int
}

// Client issues the few REST calls the bot needs.
type Client struct {
	cfg  ClientConfig
	http *httpclient.Client
}

// NewClient returns a REST client for cfg.
func NewClient(cfg ClientConfig) *Client {
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	backoff := heimdall.NewConstantBackoff(500*time.Millisecond, 5*time.Millisecond)
	return &Client{
		cfg: cfg,
		http: httpclient.NewClient(
			httpclient.WithHTTPTimeout(cfg.Timeout),
			httpclient.WithRetrier(heimdall.NewRetrier(backoff)),
			httpclient.WithRetryCount(cfg.Retries),
		),
	}
}

// ApplicationID returns the configured application ID.
func (c *Client) ApplicationID() string { return c.cfg.ApplicationID }

// CanAuthorize reports whether bot-authorized calls are possible.
func (c *Client) CanAuthorize() bool { return c.cfg.BotToken != "" }

// EditOriginal replaces the original response of the interaction identified
// by token. Interaction tokens authorize the call; no bot token is needed.
func (c *Client) EditOriginal(ctx context.Context, token string, data ResponseData) (*Message, error) {
	path := fmt.Sprintf("/webhooks/%s/%s/messages/@original", c.cfg.ApplicationID, token)
	var msg Message
	if err := c.call(ctx, http.MethodPatch, path, false, data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// AddReaction reacts to a message as the bot.
func (c *Client) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s/reactions/%s/@me",
		channelID, messageID, url.PathEscape(emoji))
	return c.call(ctx, http.MethodPut, path, true, nil, nil)
}

// RegisterCommands overwrites the application's commands, globally or for
// one guild when guildID is set.
func (c *Client) RegisterCommands(ctx context.Context, guildID string, cmds []ApplicationCommand) ([]ApplicationCommand, error) {
	path := fmt.Sprintf("/applications/%s/commands", c.cfg.ApplicationID)
	if guildID != "" {
		path = fmt.Sprintf("/applications/%s/guilds/%s/commands", c.cfg.ApplicationID, guildID)
	}
	var out []ApplicationCommand
	if err := c.call(ctx, http.MethodPut, path, true, cmds, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) call(ctx context.Context, method, path string, authorize bool, in, out any) error {
	if authorize && c.cfg.BotToken == "" {
		return ErrNoBotToken
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("discord: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIBase+path, body)
	if err != nil {
		return fmt.Errorf("discord: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorize {
		req.Header.Set("Authorization", "Bot "+c.cfg.BotToken)
	}
	req.Header.Set("User-Agent", "DiscordBot (https://github.com/janisto/instamonitor, 1.0)")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("discord: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("discord: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Body: string(raw)}
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("discord: decode response: %w", err)
		}
	}
	return nil
}
