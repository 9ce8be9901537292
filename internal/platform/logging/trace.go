package logging

import (
	"log/slog"
	"os"
	"regexp"
)

const traceparentHeader = "traceparent"

// W3C Trace Context format: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceHeaderRe = regexp.MustCompile(
	`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`,
)

type traceContext struct {
	traceID string
	spanID  string
	sampled bool
}

func parseTraceparent(header string) (traceContext, bool) {
	matches := traceHeaderRe.FindStringSubmatch(header)
	if len(matches) != 5 {
		return traceContext{}, false
	}
	return traceContext{
		traceID: matches[2],
		spanID:  matches[3],
		sampled: matches[4] == "01",
	}, true
}

func loggerWithTrace(base *slog.Logger, header, requestID string) *slog.Logger {
	if base == nil {
		base = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	attrs := traceAttrs(header)
	if requestID != "" {
		attrs = append(attrs, slog.String("requestId", requestID))
	}
	if len(attrs) == 0 {
		return base
	}
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return base.With(args...)
}

func traceAttrs(header string) []slog.Attr {
	tc, ok := parseTraceparent(header)
	if !ok {
		return nil
	}
	return []slog.Attr{
		slog.String("traceId", tc.traceID),
		slog.String("spanId", tc.spanID),
		slog.Bool("traceSampled", tc.sampled),
	}
}

// correlationID prefers the W3C trace ID and falls back to the request ID.
func correlationID(header, requestID string) string {
	if tc, ok := parseTraceparent(header); ok {
		return tc.traceID
	}
	return requestID
}
