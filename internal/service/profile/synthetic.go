package profile

import "math/rand/v2"

// RandSource yields uniform integers in [0, n). *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Inclusive bounds of the fabricated counters.
const (
	SyntheticFollowersMin = 100
	SyntheticFollowersMax = 10000
	SyntheticFollowingMin = 50
	SyntheticFollowingMax = 500
	SyntheticPostsMin     = 10
	SyntheticPostsMax     = 200
)

// DefaultRand returns a source seeded from the runtime's entropy.
func DefaultRand() RandSource {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Between returns a uniform integer in [lo, hi].
func Between(src RandSource, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}

// Synthetic fabricates placeholder data for username.
func Synthetic(username string, src RandSource) Result {
	return Result{
		Success:     true,
		Username:    username,
		FullName:    "@" + username,
		Biography:   SyntheticBio,
		Followers:   Between(src, SyntheticFollowersMin, SyntheticFollowersMax),
		Following:   Between(src, SyntheticFollowingMin, SyntheticFollowingMax),
		Posts:       Between(src, SyntheticPostsMin, SyntheticPostsMax),
		IsSynthetic: true,
		Source:      "synthetic",
	}
}
