// Package timeutil provides the wire representation of timestamps used in
// REST payloads, Discord embeds and log records.
package timeutil

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
)

const (
	// RFC3339Millis is the layout used for API and embed timestamps.
	RFC3339Millis = "2006-01-02T15:04:05.000Z07:00"
	// RFC3339Micros is the layout used for log record timestamps.
	RFC3339Micros = "2006-01-02T15:04:05.000000Z07:00"
)

// Time wraps time.Time and always serializes in UTC with millisecond precision.
type Time struct {
	time.Time
}

// NewTime wraps t.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

// Now returns the current time.
func Now() Time {
	return Time{Time: time.Now()}
}

// String formats the time as RFC 3339 in UTC with milliseconds.
func (t Time) String() string {
	return t.UTC().Format(RFC3339Millis)
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves t unchanged.
func (t *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timeutil: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("timeutil: parse %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// MarshalCBOR encodes the time as a tag 0 (date/time string) item.
func (t Time) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cbor.Tag{Number: 0, Content: t.String()})
}

// UnmarshalCBOR accepts tag 0 strings, tag 1 epochs and bare RFC 3339 strings.
func (t *Time) UnmarshalCBOR(data []byte) error {
	var parsed time.Time
	if err := cbor.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("timeutil: %w", err)
	}
	t.Time = parsed
	return nil
}
