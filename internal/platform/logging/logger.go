package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/janisto/instamonitor/internal/platform/timeutil"
)

var (
	loggerOnce sync.Once
	baseLogger *slog.Logger
	level      = new(slog.LevelVar)
)

// severityHandler wraps slog.JSONHandler so every record is stamped in UTC.
type severityHandler struct {
	slog.Handler
}

func (h *severityHandler) Handle(ctx context.Context, r slog.Record) error {
	r.Time = r.Time.UTC()
	return h.Handler.Handle(ctx, r)
}

func (h *severityHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &severityHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *severityHandler) WithGroup(name string) slog.Handler {
	return &severityHandler{Handler: h.Handler.WithGroup(name)}
}

// severityNames maps slog levels to Cloud Logging severity strings.
var severityNames = map[slog.Level]string{
	slog.LevelDebug: "DEBUG",
	slog.LevelInfo:  "INFO",
	slog.LevelWarn:  "WARNING",
	slog.LevelError: "ERROR",
	levelCritical:   "CRITICAL",
	levelAlert:      "ALERT",
	levelEmergency:  "EMERGENCY",
}

const (
	levelCritical  = slog.LevelError + 4
	levelAlert     = slog.LevelError + 8
	levelEmergency = slog.LevelError + 12
)

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(timeutil.RFC3339Micros))
		a.Key = "timestamp"
	case slog.LevelKey:
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			if name, found := severityNames[lvl]; found {
				a.Value = slog.StringValue(name)
			}
		}
		a.Key = "severity"
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}

func newLogger(w io.Writer) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	})
	return slog.New(&severityHandler{Handler: h})
}

func initLogger() {
	baseLogger = newLogger(os.Stdout)
}

// Logger returns the process-wide slog.Logger instance.
func Logger() *slog.Logger {
	loggerOnce.Do(initLogger)
	return baseLogger
}

// SetLevel changes the minimum level of the process-wide logger.
// Accepted names are debug, info, warn and error (case-insensitive).
func SetLevel(name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("logging: invalid level %q: %w", name, err)
	}
	level.Set(lvl)
	return nil
}
