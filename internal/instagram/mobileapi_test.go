package instagram

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/janisto/instamonitor/internal/service/profile"
)

func TestMobileAPI_Success(t *testing.T) {
	var gotHeader http.Header
	var gotUser string
	body := `{"user":{"full_name":"Jane","biography":"hi","follower_count":1234,"following_count":56,"media_count":78,"profile_pic_url":"https://cdn.example/p.jpg","is_private":true,"is_verified":false}}`
	srv := newWebServer(t, http.StatusOK, body, func(r *http.Request) {
		gotHeader = r.Header.Clone()
		gotUser = r.URL.Query().Get("username")
	})
	m := NewMobileAPI(NewSession(SessionConfig{}), WithBaseURL(srv.URL))

	res := m.Fetch(context.Background(), "@jane")

	if !res.Success {
		t.Fatalf("expected success, got %q", res.Error)
	}
	if gotUser != "jane" {
		t.Fatalf("expected normalized username, got %q", gotUser)
	}
	wantHeaders := map[string]string{
		"User-Agent":           MobileUserAgent,
		"Accept-Language":      "ar-EG, en-US",
		"X-Ig-Connection-Type": "MOBILE(LTE)",
		"X-Ig-Capabilities":    "AQ==",
		"Accept":               "*/*",
		"X-Ig-App-Id":          AppID,
	}
	for k, v := range wantHeaders {
		if got := gotHeader.Get(k); got != v {
			t.Fatalf("header %s: expected %q, got %q", k, v, got)
		}
	}
	if res.Followers != 1234 || res.Following != 56 || res.Posts != 78 {
		t.Fatalf("unexpected counts: %+v", res)
	}
	if res.FullName != "Jane" || res.Biography != "hi" || !res.IsPrivate || res.IsVerified {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if res.ProfilePicURL != "https://cdn.example/p.jpg" || res.ExternalURL != "" {
		t.Fatalf("unexpected urls: %+v", res)
	}
	if res.Source != "mobile_api" {
		t.Fatalf("expected mobile_api source, got %q", res.Source)
	}
}

func TestMobileAPI_MissingFields(t *testing.T) {
	srv := newWebServer(t, http.StatusOK, `{"user":{}}`, nil)
	m := NewMobileAPI(NewSession(SessionConfig{}), WithBaseURL(srv.URL))

	res := m.Fetch(context.Background(), "x")

	if !res.Success {
		t.Fatalf("expected success, got %q", res.Error)
	}
	if res.FullName != profile.NameNotAvailable || res.Biography != profile.NoBio {
		t.Fatalf("expected placeholders, got %+v", res)
	}
	if res.Followers != 0 || res.Following != 0 || res.Posts != 0 {
		t.Fatalf("expected zero counts, got %+v", res)
	}
}

func TestMobileAPI_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"forbidden", http.StatusForbidden, `{}`, "Mobile API HTTP 403"},
		{"server error", http.StatusInternalServerError, `{}`, "Mobile API HTTP 500"},
		{"no user", http.StatusOK, `{"status":"fail"}`, "User not found in mobile API"},
		{"bad json", http.StatusOK, `not json`, "Mobile API error: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newWebServer(t, tt.status, tt.body, nil)
			m := NewMobileAPI(NewSession(SessionConfig{}), WithBaseURL(srv.URL))

			res := m.Fetch(context.Background(), "x")

			if res.Success {
				t.Fatalf("expected failure, got %+v", res)
			}
			if !strings.HasPrefix(res.Error, tt.want) {
				t.Fatalf("expected error %q, got %q", tt.want, res.Error)
			}
		})
	}
}
