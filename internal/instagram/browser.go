package instagram

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/janisto/instamonitor/internal/service/profile"
)

// BrowserConfig selects how the headless browser is reached.
type BrowserConfig struct {
	// ControlURL attaches to a running browser's DevTools endpoint. When
	// empty a local headless Chrome is launched.
	ControlURL string
	// Bin is the Chrome executable used for launching. Empty lets the
	// launcher locate one.
	Bin string
	// Timeout bounds one page load. Zero means 30s.
	Timeout time.Duration
}

// Browser renders the public profile page in headless Chrome and reads the
// same Open Graph summary as Scrape. The browser process is started on first
// use and shared by later lookups; each lookup uses its own incognito context.
type Browser struct {
	cfg  BrowserConfig
	opts options

	mu      sync.Mutex
	browser *rod.Browser
}

// NewBrowser returns the headless browser strategy.
func NewBrowser(cfg BrowserConfig, opts ...Option) *Browser {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Browser{cfg: cfg, opts: buildOptions(DefaultWebBase, opts)}
}

// Name implements profile.Fetcher.
func (b *Browser) Name() string { return "browser" }

// Fetch implements profile.Fetcher.
func (b *Browser) Fetch(ctx context.Context, username string) (res profile.Result) {
	username = profile.NormalizeUsername(username)
	defer guard(&res, username, "Browser error")

	html, finalURL, err := b.load(ctx, b.opts.baseURL+"/"+url.PathEscape(username)+"/")
	if err != nil {
		return profile.Failure(username, "Browser error: "+err.Error())
	}
	if u, err := url.Parse(finalURL); err == nil && isLoginURL(u) {
		return profile.Failure(username, "Login required - account is private")
	}

	res, err = parseProfilePage(strings.NewReader(html), username)
	if err != nil {
		return profile.Failure(username, "Browser error: "+err.Error())
	}
	res.Source = b.Name()
	return res
}

func (b *Browser) load(ctx context.Context, target string) (string, string, error) {
	browser, err := b.connect(ctx)
	if err != nil {
		return "", "", err
	}

	incognito, err := browser.Incognito()
	if err != nil {
		return "", "", fmt.Errorf("incognito context: %w", err)
	}
	defer func() { _ = incognito.Close() }()

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", "", fmt.Errorf("create page: %w", err)
	}
	defer func() { _ = page.Close() }()

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: b.opts.userAgent()}); err != nil {
		return "", "", fmt.Errorf("set user agent: %w", err)
	}

	p := page.Context(ctx).Timeout(b.cfg.Timeout)
	if err := p.Navigate(target); err != nil {
		return "", "", fmt.Errorf("navigate: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return "", "", fmt.Errorf("wait load: %w", err)
	}

	doc, err := p.HTML()
	if err != nil {
		return "", "", fmt.Errorf("read html: %w", err)
	}
	info, err := p.Info()
	if err != nil {
		return "", "", fmt.Errorf("page info: %w", err)
	}
	return doc, info.URL, nil
}

func (b *Browser) connect(ctx context.Context) (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		return b.browser, nil
	}

	controlURL := b.cfg.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(true).Set("no-sandbox").Set("disable-dev-shm-usage")
		if b.cfg.Bin != "" {
			l = l.Bin(b.cfg.Bin)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = u
	}

	// The browser outlives the request that started it.
	browser := rod.New().ControlURL(controlURL).Context(context.WithoutCancel(ctx))
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	b.browser = browser
	return browser, nil
}

// Close shuts the browser down if it was started.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser == nil {
		return nil
	}
	err := b.browser.Close()
	b.browser = nil
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}
