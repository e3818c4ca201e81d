package maze

import (
	"time"

	"github.com/cespare/xxhash/v2"
)

// SeedFromContent derives a maze seed from a content identifier, so that
// the same piece of content always yields the same maze.
func SeedFromContent(id string) int64 {
	return int64(xxhash.Sum64String(id))
}

// DailySeed returns the seed of the shared daily challenge for the UTC day of t.
func DailySeed(t time.Time) int64 {
	return SeedFromContent(DailyContentID(t))
}

// DailyContentID returns the content identifier of the daily challenge for t.
func DailyContentID(t time.Time) string {
	return "daily:" + t.UTC().Format("2006-01-02")
}
