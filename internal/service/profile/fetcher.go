package profile

import "context"

// Fetcher is one strategy for retrieving profile metadata.
//
// Fetch must not panic on upstream faults and must never return a partially
// populated success: every transport, parse or access problem is reported as
// a Result with Success false and Error set.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, username string) Result
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc struct {
	Label string
	Fn    func(ctx context.Context, username string) Result
}

// Name returns the strategy label.
func (f FetcherFunc) Name() string { return f.Label }

// Fetch calls Fn.
func (f FetcherFunc) Fetch(ctx context.Context, username string) Result {
	return f.Fn(ctx, username)
}
