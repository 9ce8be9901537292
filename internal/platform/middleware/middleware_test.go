package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/janisto/instamonitor/internal/platform/auth"
)

func serve(t *testing.T, mw echo.MiddlewareFunc, req *http.Request) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var seen string
	e := echo.New()
	e.Use(mw)
	handler := func(c *echo.Context) error {
		seen, _ = c.Get("request_id").(string)
		return c.JSON(http.StatusOK, nil)
	}
	e.GET("/v1/profiles/natgeo", handler)
	e.POST("/interactions", handler)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		inbound  string
		preserve bool
	}{
		{"missing", "", false},
		{"valid", "lookup-natgeo-1", true},
		{"too long", strings.Repeat("a", maxRequestIDLength+1), false},
		{"max length", strings.Repeat("a", maxRequestIDLength), true},
		{"newline", "abc\ndef", false},
		{"non ascii", "ïd", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/profiles/natgeo", nil)
			if tt.inbound != "" {
				req.Header.Set(HeaderXRequestID, tt.inbound)
			}
			rec, seen := serve(t, RequestID(), req)

			got := rec.Header().Get(HeaderXRequestID)
			if got != seen {
				t.Fatalf("expected context and header to match, got %q and %q", seen, got)
			}
			if tt.preserve {
				if got != tt.inbound {
					t.Fatalf("expected %q, got %q", tt.inbound, got)
				}
				return
			}
			id, err := uuid.Parse(got)
			if err != nil {
				t.Fatalf("expected generated UUID, got %q", got)
			}
			if id.Version() != 7 {
				t.Fatalf("expected UUIDv7, got version %d", id.Version())
			}
		})
	}
}

func TestSecurity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/profiles/natgeo", nil)
	rec, _ := serve(t, Security(), req)

	want := map[string]string{
		"Cache-Control":          "no-store",
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "no-referrer",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Fatalf("%s: expected %q, got %q", k, v, got)
		}
	}
}

func TestSecurity_SkipPaths(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/interactions", nil)
	rec, _ := serve(t, Security("/interactions"), req)

	if got := rec.Header().Get("Cache-Control"); got != "" {
		t.Fatalf("expected no security headers on skipped path, got Cache-Control %q", got)
	}
}

func TestVary(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/profiles/natgeo", nil)
	rec, _ := serve(t, Vary(), req)

	values := rec.Header().Values("Vary")
	if len(values) != 1 || values[0] != "Accept" {
		t.Fatalf("expected single Vary: Accept, got %v", values)
	}
}

func TestCORS_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/interactions", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", auth.HeaderSignature)
	rec, _ := serve(t, CORS(), req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected '*', got %q", got)
	}
	allowed := strings.ToLower(rec.Header().Get("Access-Control-Allow-Headers"))
	if !strings.Contains(allowed, strings.ToLower(auth.HeaderSignature)) {
		t.Fatalf("expected signature header to be allowed, got %q", allowed)
	}
}

func TestCORS_ExposesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/profiles/natgeo", nil)
	req.Header.Set("Origin", "https://example.com")
	rec, _ := serve(t, CORS(), req)

	if got := rec.Header().Get("Access-Control-Expose-Headers"); got != HeaderXRequestID {
		t.Fatalf("expected %q, got %q", HeaderXRequestID, got)
	}
}
