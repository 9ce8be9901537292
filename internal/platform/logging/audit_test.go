package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestLogCommandAudit(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := contextWithLogger(context.Background(), logger)

	LogCommandAudit(ctx, CommandAudit{
		Command: "telegram_notify",
		UserID:  "80351110224678912",
		GuildID: "197038439483310086",
		Target:  "telegram",
		Result:  "success",
	})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	want := map[string]string{
		"msg":            "Audit event",
		"audit.command":  "telegram_notify",
		"audit.user_id":  "80351110224678912",
		"audit.guild_id": "197038439483310086",
		"audit.target":   "telegram",
		"audit.result":   "success",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Fatalf("expected %s %q, got %v", k, v, entry[k])
		}
	}
}

func TestLogCommandAudit_WithDetails(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := contextWithLogger(context.Background(), logger)

	LogCommandAudit(ctx, CommandAudit{
		Command: "telegram_notify",
		UserID:  "1",
		Result:  "denied",
		Details: map[string]any{"reason": "missing_administrator"},
	})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if entry["audit.result"] != "denied" {
		t.Fatalf("expected audit.result 'denied', got %q", entry["audit.result"])
	}
	details, ok := entry["audit.details"].(map[string]any)
	if !ok {
		t.Fatal("expected audit.details to be a map")
	}
	if details["reason"] != "missing_administrator" {
		t.Fatalf("expected reason 'missing_administrator', got %v", details["reason"])
	}
}
