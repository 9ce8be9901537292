package instagram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gojektech/heimdall/v6"
	"github.com/gojektech/heimdall/v6/httpclient"

	applog "github.com/janisto/instamonitor/internal/platform/logging"
	"github.com/janisto/instamonitor/internal/service/profile"
)

const (
	maxPageBody  = 2 << 20
	scrapeJitter = 5 * time.Millisecond
)

// ScrapeConfig bounds the page scrape.
type ScrapeConfig struct {
	// Attempts is the total number of tries. Zero means 3.
	Attempts int
	// Timeout bounds each try. Zero means 30s.
	Timeout time.Duration
	// Backoff is the constant delay between tries. Zero means 1s.
	Backoff time.Duration
}

// Scrape loads the public profile page without credentials and reads its
// Open Graph summary. Nothing but the HTML document is downloaded.
type Scrape struct {
	client *httpclient.Client
	opts   options
}

// NewScrape returns the page scrape strategy.
func NewScrape(cfg ScrapeConfig, opts ...Option) *Scrape {
	if cfg.Attempts <= 0 {
		cfg.Attempts = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = time.Second
	}

	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(cfg.Timeout),
		httpclient.WithRetrier(scrapeRetrier(cfg.Attempts, cfg.Backoff)),
		httpclient.WithRetryCount(cfg.Attempts-1),
	)

	return &Scrape{client: client, opts: buildOptions(DefaultWebBase, opts)}
}

// scrapeRetrier waits backoff between tries. heimdall consults the retrier
// after every failed try, including the last, so the final interval is zero.
func scrapeRetrier(attempts int, backoff time.Duration) heimdall.Retriable {
	constant := heimdall.NewConstantBackoff(backoff, scrapeJitter)
	last := attempts - 1
	return heimdall.NewRetrierFunc(func(retry int) time.Duration {
		if retry >= last {
			return 0
		}
		return constant.Next(retry)
	})
}

// Name implements profile.Fetcher.
func (s *Scrape) Name() string { return "scrape" }

// Fetch implements profile.Fetcher.
func (s *Scrape) Fetch(ctx context.Context, username string) (res profile.Result) {
	username = profile.NormalizeUsername(username)
	defer guard(&res, username, "Scrape error")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.opts.baseURL+"/"+url.PathEscape(username)+"/", nil)
	if err != nil {
		return s.fail(ctx, username, "scrape", "Scrape error: "+err.Error())
	}
	req.Header.Set("User-Agent", s.opts.userAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return s.fail(ctx, username, "connection", "Connection error: "+err.Error())
	}
	defer resp.Body.Close()

	if resp.Request != nil && isLoginURL(resp.Request.URL) {
		return s.fail(ctx, username, "login_required", "Login required - account is private")
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return s.fail(ctx, username, "bad_credentials", "Invalid credentials")
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		err := &StatusError{Code: resp.StatusCode}
		return s.fail(ctx, username, "connection", "Connection error: "+err.Error())
	case resp.StatusCode == http.StatusNotFound:
		return s.fail(ctx, username, "not_found", fmt.Sprintf("Scrape error: profile %s does not exist", username))
	case resp.StatusCode != http.StatusOK:
		err := &StatusError{Code: resp.StatusCode}
		return s.fail(ctx, username, "scrape", "Scrape error: "+err.Error())
	}

	res, err = parseProfilePage(io.LimitReader(resp.Body, maxPageBody), username)
	if err != nil {
		return s.fail(ctx, username, "scrape", "Scrape error: "+err.Error())
	}
	res.Source = s.Name()
	return res
}

func (s *Scrape) fail(ctx context.Context, username, class, msg string) profile.Result {
	applog.LogWarn(ctx, "profile scrape failed",
		slog.String("username", username),
		slog.String("class", class),
		slog.String("reason", msg))
	return profile.Failure(username, msg)
}

func isLoginURL(u *url.URL) bool {
	return u != nil && strings.HasPrefix(u.Path, loginPath)
}
