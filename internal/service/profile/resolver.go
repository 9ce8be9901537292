package profile

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	applog "github.com/janisto/instamonitor/internal/platform/logging"
)

// Resolver tries each Fetcher in priority order and returns the first
// success. It never fails: when every source fails it fabricates a synthetic
// Result. Sources run sequentially; a later source starts only after the
// previous one has fully completed.
type Resolver struct {
	fetchers []Fetcher

	mu   sync.Mutex
	rand RandSource
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRand injects the random source used for synthetic data.
func WithRand(src RandSource) Option {
	return func(r *Resolver) {
		if src != nil {
			r.rand = src
		}
	}
}

// NewResolver returns a Resolver over fetchers in the given order.
func NewResolver(fetchers []Fetcher, opts ...Option) *Resolver {
	r := &Resolver{
		fetchers: append([]Fetcher(nil), fetchers...),
		rand:     DefaultRand(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sources returns the names of the configured fetchers in priority order.
func (r *Resolver) Sources() []string {
	names := make([]string, len(r.fetchers))
	for i, f := range r.fetchers {
		names[i] = f.Name()
	}
	return names
}

// Resolve looks up username. The leading '@' is stripped before any
// source is queried.
func (r *Resolver) Resolve(ctx context.Context, username string) Result {
	name := NormalizeUsername(username)

	for _, f := range r.fetchers {
		applog.LogInfo(ctx, "trying profile source",
			slog.String("source", f.Name()),
			slog.String("username", name))

		res, err := attempt(ctx, f, name)
		if err != nil {
			applog.LogError(ctx, "profile source panicked", err,
				slog.String("source", f.Name()),
				slog.String("username", name))
			continue
		}
		if res.Success {
			applog.LogInfo(ctx, "profile source succeeded",
				slog.String("source", f.Name()),
				slog.String("username", name))
			return res
		}
		applog.LogWarn(ctx, "profile source failed",
			slog.String("source", f.Name()),
			slog.String("username", name),
			slog.String("reason", res.Error))
	}

	applog.LogWarn(ctx, "all profile sources failed, using synthetic data",
		slog.String("username", name))

	r.mu.Lock()
	defer r.mu.Unlock()
	return Synthetic(name, r.rand)
}

// attempt isolates one source so that a panic inside it cannot abort the
// fallback sequence.
func attempt(ctx context.Context, f Fetcher, username string) (res Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%s: recovered: %v", f.Name(), rec)
		}
	}()
	return f.Fetch(ctx, username), nil
}
