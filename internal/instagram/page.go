package instagram

import (
	"errors"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/janisto/instamonitor/internal/service/profile"
)

// errNoProfileMeta is returned when a page carries no profile summary.
var errNoProfileMeta = errors.New("profile metadata not found")

var (
	countsRe = regexp.MustCompile(`(?i)([\d][\d.,]*\s*[kmb]?)\s+followers?,\s*([\d][\d.,]*\s*[kmb]?)\s+following,\s*([\d][\d.,]*\s*[kmb]?)\s+posts?`)
	bioRe    = regexp.MustCompile(`(?s)on Instagram:\s*"(.*)"\s*$`)
)

// pageMeta holds the meta tags of a profile page keyed by property or name.
type pageMeta map[string]string

func collectMeta(r io.Reader) (pageMeta, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	meta := pageMeta{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			key := attr(n, "property")
			if key == "" {
				key = attr(n, "name")
			}
			if key != "" {
				if _, seen := meta[key]; !seen {
					meta[key] = attr(n, "content")
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return meta, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// parseProfilePage maps the Open Graph summary of a public profile page.
func parseProfilePage(r io.Reader, username string) (profile.Result, error) {
	meta, err := collectMeta(r)
	if err != nil {
		return profile.Result{}, err
	}

	summary := meta["og:description"]
	m := countsRe.FindStringSubmatch(summary)
	if m == nil {
		summary = meta["description"]
		m = countsRe.FindStringSubmatch(summary)
	}
	if m == nil {
		return profile.Result{}, errNoProfileMeta
	}

	followers, err := parseCount(m[1])
	if err != nil {
		return profile.Result{}, err
	}
	following, err := parseCount(m[2])
	if err != nil {
		return profile.Result{}, err
	}
	posts, err := parseCount(m[3])
	if err != nil {
		return profile.Result{}, err
	}

	fullName := titleName(meta["og:title"])
	bio := ""
	if b := bioRe.FindStringSubmatch(meta["description"]); b != nil {
		bio = b[1]
	}

	return profile.Result{
		Success:       true,
		Username:      username,
		FullName:      profile.OrPlaceholder(&fullName, profile.NameNotAvailable),
		Biography:     profile.OrPlaceholder(&bio, profile.NoBio),
		Followers:     followers,
		Following:     following,
		Posts:         posts,
		ProfilePicURL: meta["og:image"],
	}, nil
}

// titleName extracts "Jane Doe" from "Jane Doe (@jane) • Instagram photos and videos".
func titleName(title string) string {
	name, _, found := strings.Cut(title, "(@")
	if !found {
		return ""
	}
	return strings.TrimSpace(name)
}

// parseCount reads abbreviated counters such as "1,234", "12.5K" or "3M".
func parseCount(s string) (int, error) {
	s = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	s = strings.ReplaceAll(s, " ", "")
	mult := 1.0
	switch {
	case strings.HasSuffix(s, "K"):
		mult, s = 1e3, strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		mult, s = 1e6, strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "B"):
		mult, s = 1e9, strings.TrimSuffix(s, "B")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return profile.NonNegative(int(math.Round(f * mult))), nil
}
