package profile

import (
	"strconv"
	"strings"
)

// Tier is a coarse popularity class derived from a follower count.
type Tier int

const (
	TierUnknown Tier = iota
	TierBase
	TierRising
	TierPopular
	TierStar
	TierTop
)

var tierGlyphs = map[Tier]string{
	TierUnknown: "👤",
	TierBase:    "🌱",
	TierRising:  "💫",
	TierPopular: "🔥",
	TierStar:    "⭐",
	TierTop:     "👑",
}

var tierNames = map[Tier]string{
	TierUnknown: "unknown",
	TierBase:    "base",
	TierRising:  "rising",
	TierPopular: "popular",
	TierStar:    "star",
	TierTop:     "top",
}

// Glyph returns the emoji shown next to a profile of this tier.
func (t Tier) Glyph() string {
	if g, ok := tierGlyphs[t]; ok {
		return g
	}
	return tierGlyphs[TierUnknown]
}

func (t Tier) String() string {
	if n, ok := tierNames[t]; ok {
		return n
	}
	return tierNames[TierUnknown]
}

// TierOf classifies a follower count.
func TierOf(followers int) Tier {
	switch {
	case followers >= 1_000_000:
		return TierTop
	case followers >= 100_000:
		return TierStar
	case followers >= 10_000:
		return TierPopular
	case followers >= 1_000:
		return TierRising
	default:
		return TierBase
	}
}

// ParseTier classifies a textual follower count such as "12,345".
// Anything that is not an integer maps to TierUnknown.
func ParseTier(followers string) Tier {
	cleaned := strings.ReplaceAll(strings.TrimSpace(followers), ",", "")
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return TierUnknown
	}
	return TierOf(n)
}
