package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func captured(t *testing.T, level slog.Level) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level}))
	return contextWithLogger(context.Background(), logger), &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	if err := json.Unmarshal(lines[len(lines)-1], &entry); err != nil {
		t.Fatalf("failed to unmarshal %q: %v", buf.String(), err)
	}
	return entry
}

func TestLoggerFromContext_FallsBackToGlobal(t *testing.T) {
	//nolint:staticcheck // nil context is part of the contract
	for _, ctx := range []context.Context{nil, context.Background()} {
		if LoggerFromContext(ctx) != Logger() {
			t.Fatal("expected global logger")
		}
	}
	ctx, _ := captured(t, slog.LevelInfo)
	if LoggerFromContext(ctx) == Logger() {
		t.Fatal("expected context logger")
	}
}

func TestTraceIDFromContext(t *testing.T) {
	if TraceIDFromContext(nil) != nil { //nolint:staticcheck // nil context is part of the contract
		t.Fatal("expected nil for nil context")
	}
	if TraceIDFromContext(context.Background()) != nil {
		t.Fatal("expected nil without trace id")
	}
	if TraceIDFromContext(contextWithTraceID(context.Background(), "")) != nil {
		t.Fatal("expected empty trace id to be ignored")
	}
	ctx := contextWithTraceID(nil, "req-42") //nolint:staticcheck // nil context is part of the contract
	if id := TraceIDFromContext(ctx); id == nil || *id != "req-42" {
		t.Fatalf("expected req-42, got %v", id)
	}
}

func TestLogHelpers(t *testing.T) {
	tests := []struct {
		name  string
		log   func(ctx context.Context)
		level string
		err   any
	}{
		{"info", func(ctx context.Context) { LogInfo(ctx, "msg", slog.String("source", "web_api")) }, "INFO", nil},
		{"warn", func(ctx context.Context) { LogWarn(ctx, "msg", slog.String("source", "web_api")) }, "WARN", nil},
		{"error", func(ctx context.Context) {
			LogError(ctx, "msg", errors.New("HTTP 429"), slog.String("source", "web_api"))
		}, "ERROR", "HTTP 429"},
		{"error without err", func(ctx context.Context) { LogError(ctx, "msg", nil, slog.String("source", "web_api")) }, "ERROR", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, buf := captured(t, slog.LevelDebug)
			tt.log(ctx)

			entry := lastEntry(t, buf)
			if entry["level"] != tt.level || entry["msg"] != "msg" || entry["source"] != "web_api" {
				t.Fatalf("unexpected entry %v", entry)
			}
			if got, ok := entry["error"]; tt.err == nil && ok || tt.err != nil && got != tt.err {
				t.Fatalf("expected error %v, got %v", tt.err, got)
			}
		})
	}
}

func TestLogDebug_FilteredByLevel(t *testing.T) {
	ctx, buf := captured(t, slog.LevelInfo)
	LogDebug(ctx, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug record to be filtered, got %s", buf.String())
	}
}

func TestWithAttrs(t *testing.T) {
	ctx, buf := captured(t, slog.LevelInfo)
	if WithAttrs(ctx) != ctx {
		t.Fatal("expected the same context when no attrs are given")
	}

	tagged := WithAttrs(ctx, slog.String("command", "monitorban"), slog.String("interactionId", "123"))
	LogInfo(tagged, "tagged")
	entry := lastEntry(t, buf)
	if entry["command"] != "monitorban" || entry["interactionId"] != "123" {
		t.Fatalf("expected command tags, got %v", entry)
	}

	LogInfo(ctx, "untagged")
	if _, ok := lastEntry(t, buf)["command"]; ok {
		t.Fatal("expected parent context to stay untagged")
	}
}
