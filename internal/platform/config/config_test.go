package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load([]string{"CREDENTIALS_FILE=" + filepath.Join(t.TempDir(), "missing.csv")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Environment != "production" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Discord.APIBase != "https://discord.com/api/v10" || cfg.Telegram.APIBase != "https://api.telegram.org" {
		t.Fatalf("unexpected api bases %+v %+v", cfg.Discord, cfg.Telegram)
	}
	if cfg.Instagram.Timeout != 30*time.Second || cfg.Instagram.ScrapeAttempts != 3 || cfg.Instagram.BrowserEnabled {
		t.Fatalf("unexpected instagram defaults %+v", cfg.Instagram)
	}
	if cfg.Bot.FrameDelay != 500*time.Millisecond || cfg.Bot.Name != "Instagram Monitor Bot" {
		t.Fatalf("unexpected bot defaults %+v", cfg.Bot)
	}
	if cfg.IsDevelopment() {
		t.Fatal("expected production")
	}
}

func TestLoad_CredentialsOverrideEnvironment(t *testing.T) {
	path := writeCredentials(t, "key,value\nDISCORD_TOKEN,from-csv\nTELEGRAM_CHAT_ID,-100\n")
	cfg, err := Load([]string{
		"CREDENTIALS_FILE=" + path,
		"DISCORD_TOKEN=from-env",
		"TELEGRAM_BOT_TOKEN=tg-env",
		"SCRAPE_ATTEMPTS=5",
		"BROWSER_ENABLED=true",
		"APP_ENVIRONMENT=development",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Discord.Token != "from-csv" {
		t.Fatalf("expected csv to win, got %q", cfg.Discord.Token)
	}
	if cfg.Telegram.Token != "tg-env" || cfg.Telegram.ChatID != "-100" {
		t.Fatalf("unexpected telegram %+v", cfg.Telegram)
	}
	if cfg.Instagram.ScrapeAttempts != 5 || !cfg.Instagram.BrowserEnabled {
		t.Fatalf("unexpected instagram %+v", cfg.Instagram)
	}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development")
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	_, err := Load([]string{
		"CREDENTIALS_FILE=" + filepath.Join(t.TempDir(), "missing.csv"),
		"SCRAPE_ATTEMPTS=many",
	})
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestReadCredentials(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    map[string]string
		wantErr bool
	}{
		{"empty", "", map[string]string{}, false},
		{"header only", "key,value\n", map[string]string{}, false},
		{"reordered columns", "value,key\nabc,TOKEN\n", map[string]string{"TOKEN": "abc"}, false},
		{"bom and spaces", "\uFEFFkey, value\nA, 1\n", map[string]string{"A": "1"}, false},
		{"quoted comma", "key,value\nMSG,\"a,b\"\n", map[string]string{"MSG": "a,b"}, false},
		{"short row", "key,value\nONLY\n", map[string]string{"ONLY": ""}, false},
		{"blank key skipped", "key,value\n,x\n", map[string]string{}, false},
		{"bad header", "name,secret\nA,1\n", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCredentials(strings.NewReader(tt.in))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Fatalf("key %s: expected %q, got %q", k, v, got[k])
				}
			}
		})
	}
}

func TestReadCredentialsFile_Missing(t *testing.T) {
	got, err := ReadCredentialsFile(filepath.Join(t.TempDir(), "nope.csv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}
