package instagram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func fastScrape(base string) *Scrape {
	return NewScrape(ScrapeConfig{Attempts: 3, Timeout: 2 * time.Second, Backoff: time.Millisecond},
		WithBaseURL(base), WithUserAgent(fixedAgent))
}

func TestScrape_Success(t *testing.T) {
	var gotPath, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(profilePage))
	}))
	defer srv.Close()

	res := fastScrape(srv.URL).Fetch(context.Background(), "@natgeo")

	if !res.Success {
		t.Fatalf("expected success, got %q", res.Error)
	}
	if gotPath != "/natgeo/" || gotAgent != "test-agent" {
		t.Fatalf("unexpected request path=%q agent=%q", gotPath, gotAgent)
	}
	if res.Source != "scrape" || res.Followers != 283_000_000 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestScrape_LoginRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/private/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/accounts/login/?next=/private/", http.StatusFound)
	})
	mux.HandleFunc("/accounts/login/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><head><title>Login</title></head></html>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res := fastScrape(srv.URL).Fetch(context.Background(), "private")

	if res.Success || res.Error != "Login required - account is private" {
		t.Fatalf("expected login required, got %+v", res)
	}
}

func TestScrape_StatusClasses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{"unauthorized", http.StatusUnauthorized, "Invalid credentials"},
		{"not found", http.StatusNotFound, "Scrape error: profile x does not exist"},
		{"forbidden", http.StatusForbidden, "Scrape error: HTTP 403: Forbidden"},
		{"rate limited", http.StatusTooManyRequests, "Connection error: HTTP 429: Too Many Requests"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			res := fastScrape(srv.URL).Fetch(context.Background(), "x")

			if res.Success || res.Error != tt.want {
				t.Fatalf("expected %q, got %+v", tt.want, res)
			}
		})
	}
}

func TestScrape_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	res := fastScrape(srv.URL).Fetch(context.Background(), "x")

	if res.Success || res.Error != "Connection error: HTTP 503: Service Unavailable" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestScrape_NoBackoffAfterFinalAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	const backoff = 400 * time.Millisecond
	s := NewScrape(ScrapeConfig{Attempts: 2, Timeout: 2 * time.Second, Backoff: backoff},
		WithBaseURL(srv.URL), WithUserAgent(fixedAgent))

	start := time.Now()
	res := s.Fetch(context.Background(), "x")
	elapsed := time.Since(start)

	if res.Success {
		t.Fatalf("expected failure, got %+v", res)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
	if elapsed < backoff {
		t.Fatalf("expected one backoff between attempts, took %v", elapsed)
	}
	if elapsed >= 2*backoff {
		t.Fatalf("expected no backoff after the last attempt, took %v", elapsed)
	}
}

func TestScrapeRetrier_Intervals(t *testing.T) {
	r := scrapeRetrier(3, 100*time.Millisecond)
	for retry, want := range map[int]bool{0: true, 1: true, 2: false, 3: false} {
		got := r.NextInterval(retry)
		if want && got < 100*time.Millisecond {
			t.Fatalf("retry %d: expected backoff, got %v", retry, got)
		}
		if !want && got != 0 {
			t.Fatalf("retry %d: expected no wait, got %v", retry, got)
		}
	}
}

func TestScrape_RecoversAfterTransientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(profilePage))
	}))
	defer srv.Close()

	res := fastScrape(srv.URL).Fetch(context.Background(), "natgeo")

	if !res.Success {
		t.Fatalf("expected success after retry, got %q", res.Error)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestScrape_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	res := fastScrape(base).Fetch(context.Background(), "x")

	if res.Success || !strings.HasPrefix(res.Error, "Connection error: ") {
		t.Fatalf("expected connection error, got %+v", res)
	}
}

func TestScrape_UnparseablePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><head><title>Instagram</title></head></html>"))
	}))
	defer srv.Close()

	res := fastScrape(srv.URL).Fetch(context.Background(), "x")

	if res.Success || res.Error != "Scrape error: profile metadata not found" {
		t.Fatalf("unexpected result: %+v", res)
	}
}
