package analytics

import (
	"sort"

	"journal-go/internal/model"
)

// DefaultTagLimit caps CommonTags when the caller passes a non-positive limit.
const DefaultTagLimit = 10

// TagCount is how many entries carry Tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// AverageSentiment is the mean score of entries dated in [today-days, today], or 0.
func AverageSentiment(entries []model.Entry, days int, today model.Date) float64 {
	return mean(scoresOf(filterWindow(entries, today.AddDays(-days), today)))
}

// CommonTags counts tag occurrences across all entries and returns the most
// frequent, ties broken by name.
func CommonTags(entries []model.Entry, limit int) []TagCount {
	if limit <= 0 {
		limit = DefaultTagLimit
	}

	counts := make(map[string]int)
	for _, e := range entries {
		for _, tag := range e.Tags {
			counts[tag]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
