package instagram

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
)

// SessionConfig configures the shared cookie-carrying client.
type SessionConfig struct {
	CSRFToken string
	SessionID string
	// Origins receive the configured cookies. Defaults to the web and
	// mobile hosts.
	Origins []string
	// Timeout bounds each request. Zero means 30s.
	Timeout time.Duration
}

// Session owns the long-lived HTTP client used by the JSON strategies.
// The client is created on first use and recreated after Close. A Session is
// safe for concurrent use.
type Session struct {
	cfg SessionConfig

	mu     sync.Mutex
	client *http.Client
}

// NewSession returns an unopened Session.
func NewSession(cfg SessionConfig) *Session {
	if len(cfg.Origins) == 0 {
		cfg.Origins = []string{DefaultWebBase, DefaultMobileBase}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Session{cfg: cfg}
}

// Client returns the current client, opening one if needed.
func (s *Session) Client() (*http.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	cookies := s.cookies()
	if len(cookies) > 0 {
		for _, origin := range s.cfg.Origins {
			u, err := url.Parse(origin)
			if err != nil {
				return nil, fmt.Errorf("parse cookie origin %q: %w", origin, err)
			}
			jar.SetCookies(u, cookies)
		}
	}

	s.client = &http.Client{Jar: jar, Timeout: s.cfg.Timeout}
	return s.client, nil
}

// Open reports whether a client currently exists.
func (s *Session) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client != nil
}

// Close releases idle connections and drops the client. A later call to
// Client opens a fresh one. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return
	}
	s.client.CloseIdleConnections()
	s.client = nil
}

func (s *Session) cookies() []*http.Cookie {
	var out []*http.Cookie
	if s.cfg.CSRFToken != "" {
		out = append(out, &http.Cookie{Name: "csrftoken", Value: s.cfg.CSRFToken, Path: "/"})
	}
	if s.cfg.SessionID != "" {
		out = append(out, &http.Cookie{Name: "sessionid", Value: s.cfg.SessionID, Path: "/"})
	}
	return out
}
