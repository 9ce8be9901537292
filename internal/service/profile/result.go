// Package profile resolves public Instagram profile metadata through an
// ordered list of fetch strategies with a synthetic last-resort fallback.
package profile

import "strings"

// Placeholders used when an upstream source omits a field.
const (
	NameNotAvailable = "Not available"
	NoBio            = "No bio"
	SyntheticBio     = "Bio not available"
)

// Result is the outcome of one profile lookup. A Result is either real data
// (Success), a failure (Error set), or synthetic data (Success and IsSynthetic).
type Result struct {
	Success       bool   `json:"success"                 cbor:"success"`
	Username      string `json:"username"                cbor:"username"`
	FullName      string `json:"fullName,omitempty"      cbor:"fullName,omitempty"`
	Biography     string `json:"biography,omitempty"     cbor:"biography,omitempty"`
	Followers     int    `json:"followers"               cbor:"followers"`
	Following     int    `json:"following"               cbor:"following"`
	Posts         int    `json:"posts"                   cbor:"posts"`
	ProfilePicURL string `json:"profilePicUrl,omitempty" cbor:"profilePicUrl,omitempty"`
	IsPrivate     bool   `json:"isPrivate"               cbor:"isPrivate"`
	IsVerified    bool   `json:"isVerified"              cbor:"isVerified"`
	ExternalURL   string `json:"externalUrl,omitempty"   cbor:"externalUrl,omitempty"`
	Error         string `json:"error,omitempty"         cbor:"error,omitempty"`
	IsSynthetic   bool   `json:"isSynthetic"             cbor:"isSynthetic"`
	Source        string `json:"source,omitempty"        cbor:"source,omitempty"`
}

// Failure builds an unsuccessful Result carrying msg.
func Failure(username, msg string) Result {
	return Result{Username: username, Error: msg}
}

// NormalizeUsername trims surrounding whitespace and every leading '@'.
// It is idempotent.
func NormalizeUsername(username string) string {
	return strings.TrimLeft(strings.TrimSpace(username), "@")
}

// OrPlaceholder returns s, or placeholder when s is nil or blank.
func OrPlaceholder(s *string, placeholder string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return placeholder
	}
	return *s
}

// NonNegative clamps n at zero.
func NonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
