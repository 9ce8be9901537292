package instagram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	applog "github.com/janisto/instamonitor/internal/platform/logging"
	"github.com/janisto/instamonitor/internal/service/profile"
)

type mobileProfileResponse struct {
	User *mobileUser `json:"user"`
}

type mobileUser struct {
	FullName       *string `json:"full_name"`
	Biography      *string `json:"biography"`
	FollowerCount  *int    `json:"follower_count"`
	FollowingCount *int    `json:"following_count"`
	MediaCount     *int    `json:"media_count"`
	ProfilePicURL  *string `json:"profile_pic_url"`
	IsPrivate      *bool   `json:"is_private"`
	IsVerified     *bool   `json:"is_verified"`
	ExternalURL    *string `json:"external_url"`
}

// MobileAPI queries the profile endpoint on the mobile host, presenting
// itself as the Android client.
type MobileAPI struct {
	session *Session
	opts    options
}

// NewMobileAPI returns the mobile JSON strategy bound to session.
func NewMobileAPI(session *Session, opts ...Option) *MobileAPI {
	o := buildOptions(DefaultMobileBase, opts)
	return &MobileAPI{session: session, opts: o}
}

// Name implements profile.Fetcher.
func (m *MobileAPI) Name() string { return "mobile_api" }

// Fetch implements profile.Fetcher.
func (m *MobileAPI) Fetch(ctx context.Context, username string) (res profile.Result) {
	username = profile.NormalizeUsername(username)
	defer guard(&res, username, "Mobile API error")

	header := http.Header{}
	header.Set("User-Agent", MobileUserAgent)
	header.Set("Accept-Language", "ar-EG, en-US")
	header.Set("X-IG-Connection-Type", "MOBILE(LTE)")
	header.Set("X-IG-Capabilities", "AQ==")
	header.Set("Accept", "*/*")
	header.Set("X-IG-App-ID", AppID)

	var body mobileProfileResponse
	err := getJSON(ctx, m.session, m.opts.baseURL+profileInfoPath, username, header, &body)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			return profile.Failure(username, fmt.Sprintf("Mobile API HTTP %d", se.Code))
		}
		applog.LogError(ctx, "mobile api request failed", err, slog.String("username", username))
		return profile.Failure(username, "Mobile API error: "+err.Error())
	}

	if body.User == nil {
		return profile.Failure(username, "User not found in mobile API")
	}
	u := body.User

	return profile.Result{
		Success:       true,
		Username:      username,
		FullName:      profile.OrPlaceholder(u.FullName, profile.NameNotAvailable),
		Biography:     profile.OrPlaceholder(u.Biography, profile.NoBio),
		Followers:     profile.NonNegative(deref(u.FollowerCount)),
		Following:     profile.NonNegative(deref(u.FollowingCount)),
		Posts:         profile.NonNegative(deref(u.MediaCount)),
		ProfilePicURL: deref(u.ProfilePicURL),
		IsPrivate:     deref(u.IsPrivate),
		IsVerified:    deref(u.IsVerified),
		ExternalURL:   deref(u.ExternalURL),
		Source:        m.Name(),
	}
}
