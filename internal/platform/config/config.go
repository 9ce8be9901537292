// Package config loads runtime settings from the environment overlaid with a
// key/value credentials file.
package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultCredentialsFile is read from the working directory unless
// CREDENTIALS_FILE points elsewhere.
const DefaultCredentialsFile = "credentials.csv"

// Config is the full runtime configuration.
type Config struct {
	Port        string `env:"PORT"            envDefault:"8080"`
	Environment string `env:"APP_ENVIRONMENT" envDefault:"production"`
	LogLevel    string `env:"LOG_LEVEL"`

	Discord   Discord
	Telegram  Telegram
	Instagram Instagram
	Bot       Bot
}

// Discord configures the interactions endpoint and REST calls.
type Discord struct {
	Token         string `env:"DISCORD_TOKEN"`
	ApplicationID string `env:"DISCORD_APPLICATION_ID"`
	PublicKey     string `env:"DISCORD_PUBLIC_KEY"`
	GuildID       string `env:"DISCORD_GUILD_ID"`
	APIBase       string `env:"DISCORD_API_BASE"       envDefault:"https://discord.com/api/v10"`
}

// Telegram configures the notification relay.
type Telegram struct {
	Token   string `env:"TELEGRAM_BOT_TOKEN"`
	ChatID  string `env:"TELEGRAM_CHAT_ID"`
	APIBase string `env:"TELEGRAM_API_BASE"  envDefault:"https://api.telegram.org"`
}

// Instagram configures the profile sources.
type Instagram struct {
	CSRFToken         string        `env:"INSTAGRAM_CSRFTOKEN"`
	SessionID         string        `env:"INSTAGRAM_SESSIONID"`
	WebBase           string        `env:"INSTAGRAM_WEB_BASE"       envDefault:"https://www.instagram.com"`
	MobileBase        string        `env:"INSTAGRAM_MOBILE_BASE"    envDefault:"https://i.instagram.com"`
	Timeout           time.Duration `env:"INSTAGRAM_TIMEOUT"        envDefault:"30s"`
	ScrapeAttempts    int           `env:"SCRAPE_ATTEMPTS"          envDefault:"3"`
	ScrapeBackoff     time.Duration `env:"SCRAPE_BACKOFF"           envDefault:"1s"`
	BrowserEnabled    bool          `env:"BROWSER_ENABLED"`
	BrowserControlURL string        `env:"BROWSER_CONTROL_URL"`
	BrowserBin        string        `env:"BROWSER_BIN"`
}

// Bot configures presentation.
type Bot struct {
	Name       string        `env:"BOT_NAME"            envDefault:"Instagram Monitor Bot"`
	FrameDelay time.Duration `env:"LOADING_FRAME_DELAY" envDefault:"500ms"`
}

// Load parses environ (KEY=value pairs, as from os.Environ) overlaid with
// the credentials file. Credentials win over the environment.
func Load(environ []string) (Config, error) {
	vars := env.ToMap(environ)

	path := vars["CREDENTIALS_FILE"]
	if path == "" {
		path = DefaultCredentialsFile
	}
	creds, err := ReadCredentialsFile(path)
	if err != nil {
		return Config{}, err
	}
	for k, v := range creds {
		vars[k] = v
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ReadCredentialsFile reads path with ReadCredentials. A missing file yields
// an empty map.
func ReadCredentialsFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open credentials: %w", err)
	}
	defer f.Close()
	return ReadCredentials(f)
}

// ReadCredentials parses a CSV document with a "key,value" header row.
// Column order is taken from the header; extra columns are ignored.
func ReadCredentials(r io.Reader) (map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials header: %w", err)
	}
	keyCol, valueCol := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")) {
		case "key":
			keyCol = i
		case "value":
			valueCol = i
		}
	}
	if keyCol < 0 || valueCol < 0 {
		return nil, errors.New("credentials: header must contain key and value columns")
	}

	creds := map[string]string{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read credentials: %w", err)
		}
		if keyCol >= len(rec) {
			continue
		}
		key := strings.TrimSpace(rec[keyCol])
		if key == "" {
			continue
		}
		value := ""
		if valueCol < len(rec) {
			value = rec[valueCol]
		}
		creds[key] = value
	}
	return creds, nil
}

// IsDevelopment reports whether APP_ENVIRONMENT is development.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
