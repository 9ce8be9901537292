package bot

import (
	"strings"
	"testing"

	"github.com/janisto/instamonitor/internal/service/profile"
)

func TestTruncateField(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantLen int
		cut     bool
	}{
		{"short", "hello", 5, false},
		{"exactly limit", strings.Repeat("a", 1024), 1024, false},
		{"one over", strings.Repeat("a", 1025), 1024, true},
		{"multibyte", strings.Repeat("界", 2000), 1024, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateField(tt.in)
			if n := len([]rune(got)); n != tt.wantLen {
				t.Fatalf("expected %d characters, got %d", tt.wantLen, n)
			}
			if cut := got != tt.in; cut != tt.cut {
				t.Fatalf("expected cut=%v", tt.cut)
			}
			if tt.cut && !strings.HasSuffix(got, "...") {
				t.Fatal("expected ... suffix")
			}
		})
	}
}

func TestFormatCount(t *testing.T) {
	tests := map[int]string{
		0:           "0",
		999:         "999",
		1000:        "1,000",
		283_000_000: "283,000,000",
	}
	for in, want := range tests {
		if got := FormatCount(in); got != want {
			t.Fatalf("FormatCount(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatSpan(t *testing.T) {
	if got := FormatSpan(1, 1, 1); got != "1 hour, 1 minute, 1 second" {
		t.Fatalf("unexpected singular span %q", got)
	}
	if got := FormatSpan(24, 0, 59); got != "24 hours, 0 minutes, 59 seconds" {
		t.Fatalf("unexpected plural span %q", got)
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(profile.Result{FullName: "Jane", IsVerified: true}); got != "Jane ✅" {
		t.Fatalf("unexpected verified name %q", got)
	}
	if got := DisplayName(profile.Result{FullName: "Jane"}); got != "Jane" {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestProfileEmbed_TierGlyph(t *testing.T) {
	tests := []struct {
		followers int
		glyph     string
	}{
		{999, "🌱"},
		{1000, "💫"},
		{10_000, "🔥"},
		{100_000, "⭐"},
		{1_000_000, "👑"},
	}
	for _, tt := range tests {
		e := ProfileEmbed(banMonitor, profile.Result{Success: true, Username: "x", Followers: tt.followers}, nil, testNow)
		if !strings.HasSuffix(e.Title, tt.glyph) {
			t.Fatalf("followers %d: expected %s in %q", tt.followers, tt.glyph, e.Title)
		}
		if e.Author != nil {
			t.Fatal("expected no author without invoker")
		}
	}
}
