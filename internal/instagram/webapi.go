package instagram

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	applog "github.com/janisto/instamonitor/internal/platform/logging"
	"github.com/janisto/instamonitor/internal/service/profile"
)

type webProfileResponse struct {
	Data *struct {
		User *webUser `json:"user"`
	} `json:"data"`
}

type edgeCount struct {
	Count int `json:"count"`
}

type webUser struct {
	FullName                 *string    `json:"full_name"`
	Biography                *string    `json:"biography"`
	EdgeFollowedBy           *edgeCount `json:"edge_followed_by"`
	EdgeFollow               *edgeCount `json:"edge_follow"`
	EdgeOwnerToTimelineMedia *edgeCount `json:"edge_owner_to_timeline_media"`
	ProfilePicURLHD          *string    `json:"profile_pic_url_hd"`
	ProfilePicURL            *string    `json:"profile_pic_url"`
	IsPrivate                *bool      `json:"is_private"`
	IsVerified               *bool      `json:"is_verified"`
	ExternalURL              *string    `json:"external_url"`
}

func (e *edgeCount) value() int {
	if e == nil {
		return 0
	}
	return profile.NonNegative(e.Count)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

// WebAPI queries the JSON profile endpoint used by the web client.
type WebAPI struct {
	session *Session
	opts    options
}

// NewWebAPI returns the web JSON strategy bound to session.
func NewWebAPI(session *Session, opts ...Option) *WebAPI {
	return &WebAPI{session: session, opts: buildOptions(DefaultWebBase, opts)}
}

// Name implements profile.Fetcher.
func (w *WebAPI) Name() string { return "web_api" }

// Fetch implements profile.Fetcher.
func (w *WebAPI) Fetch(ctx context.Context, username string) (res profile.Result) {
	username = profile.NormalizeUsername(username)
	defer guard(&res, username, "Web API error")

	header := http.Header{}
	header.Set("Accept", "*/*")
	header.Set("Accept-Language", "en-US,en;q=0.9")
	header.Set("Referer", w.opts.baseURL+"/"+username+"/")
	header.Set("User-Agent", w.opts.userAgent())
	header.Set("X-IG-App-ID", AppID)
	header.Set("X-IG-WWW-Claim", "0")
	header.Set("X-Requested-With", "XMLHttpRequest")

	var body webProfileResponse
	err := getJSON(ctx, w.session, w.opts.baseURL+profileInfoPath, username, header, &body)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			return profile.Failure(username, se.Error())
		}
		applog.LogError(ctx, "web api request failed", err, slog.String("username", username))
		return profile.Failure(username, "Web API error: "+err.Error())
	}

	if body.Data == nil || body.Data.User == nil {
		return profile.Failure(username, "User not found or data not available")
	}
	u := body.Data.User

	return profile.Result{
		Success:       true,
		Username:      username,
		FullName:      profile.OrPlaceholder(u.FullName, profile.NameNotAvailable),
		Biography:     profile.OrPlaceholder(u.Biography, profile.NoBio),
		Followers:     u.EdgeFollowedBy.value(),
		Following:     u.EdgeFollow.value(),
		Posts:         u.EdgeOwnerToTimelineMedia.value(),
		ProfilePicURL: firstNonEmpty(u.ProfilePicURLHD, u.ProfilePicURL),
		IsPrivate:     deref(u.IsPrivate),
		IsVerified:    deref(u.IsVerified),
		ExternalURL:   deref(u.ExternalURL),
		Source:        w.Name(),
	}
}
