package profile

import "github.com/janisto/instamonitor/internal/platform/timeutil"

// Profile is the REST view of a resolved lookup.
type Profile struct {
	Username      string        `json:"username"                cbor:"username"`
	FullName      string        `json:"fullName"                cbor:"fullName"`
	Biography     string        `json:"biography"               cbor:"biography"`
	Followers     int           `json:"followers"               cbor:"followers"`
	Following     int           `json:"following"               cbor:"following"`
	Posts         int           `json:"posts"                   cbor:"posts"`
	ProfilePicURL string        `json:"profilePicUrl,omitempty" cbor:"profilePicUrl,omitempty"`
	ExternalURL   string        `json:"externalUrl,omitempty"   cbor:"externalUrl,omitempty"`
	IsPrivate     bool          `json:"isPrivate"               cbor:"isPrivate"`
	IsVerified    bool          `json:"isVerified"              cbor:"isVerified"`
	IsSynthetic   bool          `json:"isSynthetic"             cbor:"isSynthetic"`
	Source        string        `json:"source,omitempty"        cbor:"source,omitempty"`
	Tier          string        `json:"tier"                    cbor:"tier"`
	FetchedAt     timeutil.Time `json:"fetchedAt"               cbor:"fetchedAt"`
}
