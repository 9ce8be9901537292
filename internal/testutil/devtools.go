// Package testutil holds helpers for tests that need external processes.
package testutil

import (
	"context"
	"net"
	"net/url"
	"os"
	"testing"
	"time"
)

// DevToolsEnv names the variable pointing tests at a running Chrome.
const DevToolsEnv = "BROWSER_CONTROL_URL"

// RequireDevTools skips the test unless DevToolsEnv holds a reachable
// DevTools websocket URL, which it returns.
func RequireDevTools(t *testing.T) string {
	t.Helper()

	raw := os.Getenv(DevToolsEnv)
	if raw == "" {
		t.Skipf("%s not set; skipping browser test", DevToolsEnv)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		t.Skipf("%s is not a usable URL: %q", DevToolsEnv, raw)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", u.Host)
	if err != nil {
		t.Skipf("DevTools not reachable at %s: %v", u.Host, err)
	}
	_ = conn.Close()
	return raw
}
