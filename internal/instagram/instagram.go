// Package instagram implements the profile fetch strategies: the web JSON
// endpoint, the mobile JSON endpoint, a public page scrape and an optional
// headless browser page load.
package instagram

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/janisto/instamonitor/internal/service/profile"
)

// Upstream hosts.
const (
	DefaultWebBase    = "https://www.instagram.com"
	DefaultMobileBase = "https://i.instagram.com"

	// AppID is the public web client identifier sent as X-IG-App-ID.
	AppID = "936619743392459"

	profileInfoPath = "/api/v1/users/web_profile_info/"
	loginPath       = "/accounts/login"
)

// StatusError reports an unexpected upstream HTTP status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, http.StatusText(e.Code))
}

type options struct {
	baseURL   string
	userAgent func() string
}

// Option configures a strategy.
type Option func(*options)

// WithBaseURL overrides the upstream origin, e.g. for tests.
func WithBaseURL(base string) Option {
	return func(o *options) {
		if base != "" {
			o.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithUserAgent overrides the user agent picker.
func WithUserAgent(pick func() string) Option {
	return func(o *options) {
		if pick != nil {
			o.userAgent = pick
		}
	}
}

func buildOptions(base string, opts []Option) options {
	o := options{baseURL: base, userAgent: RandomUserAgent}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// guard converts a panic inside a strategy into a failed Result.
func guard(res *profile.Result, username, prefix string) {
	if rec := recover(); rec != nil {
		*res = profile.Failure(username, fmt.Sprintf("%s: %v", prefix, rec))
	}
}
