// Package analytics derives trend summaries and calendar grids from journal
// entries. Every function here is pure: the caller supplies "today" and the
// entries, and the result depends on nothing else.
package analytics

import (
	"math"
	"sort"

	"journal-go/internal/model"
)

// Direction is the reading of a first-half/second-half comparison.
type Direction string

const (
	Up     Direction = "up"
	Down   Direction = "down"
	Stable Direction = "stable"
)

// Split thresholds. Deltas inside ±threshold read as Stable.
const (
	SentimentThreshold  = 0.5
	VolatilityThreshold = 0.1
	TagThreshold        = 0.3
)

// RecentCount is how many of the latest scores TrendSummary.RecentSentiments holds.
const RecentCount = 7

// TagBreakdown summarizes the entries carrying one tag.
type TagBreakdown struct {
	Tag                 string    `json:"tag"`
	AvgMood             float64   `json:"avg_mood"`
	Count               int       `json:"count"`
	PercentageOfEntries int       `json:"percentage_of_entries"`
	Trend               Direction `json:"trend"`
	TrendPercentage     float64   `json:"trend_percentage"`
}

// BandCount is the number of entries whose score falls in Band.
type BandCount struct {
	Band  model.SentimentBand `json:"-"`
	Label string              `json:"label"`
	Count int                 `json:"count"`
}

// TrendSummary is recomputed on every request and never stored.
type TrendSummary struct {
	WindowDays   int        `json:"window_days"`
	StartDate    model.Date `json:"start_date"`
	EndDate      model.Date `json:"end_date"`
	TotalEntries int        `json:"total_entries"`

	AverageSentiment float64   `json:"average_sentiment"`
	Volatility       float64   `json:"volatility"`
	TrendDirection   Direction `json:"trend_direction"`
	TrendPercentage  float64   `json:"trend_percentage"`

	VolatilityTrend           Direction `json:"volatility_trend"`
	VolatilityTrendPercentage float64   `json:"volatility_trend_percentage"`

	TagBreakdown     []TagBreakdown `json:"tag_breakdown"`
	RecentSentiments []float64      `json:"recent_sentiments"`
	Distribution     []BandCount    `json:"distribution"`
}

// ComputeTrends summarizes the entries dated within windowDays of today
// (both ends inclusive). Entries outside the window are ignored.
func ComputeTrends(entries []model.Entry, windowDays int, today model.Date) TrendSummary {
	start := today.AddDays(-windowDays)
	window := sortedByDate(filterWindow(entries, start, today))
	scores := scoresOf(window)

	summary := TrendSummary{
		WindowDays:       windowDays,
		StartDate:        start,
		EndDate:          today,
		TotalEntries:     len(window),
		AverageSentiment: mean(scores),
		Volatility:       sampleStdDev(scores),
		TagBreakdown:     tagBreakdown(window),
		RecentSentiments: recent(scores, RecentCount),
		Distribution:     distribution(scores),
	}

	first, second := splitHalves(scores)
	summary.TrendDirection, summary.TrendPercentage = compare(mean(first), mean(second), SentimentThreshold)
	summary.VolatilityTrend, summary.VolatilityTrendPercentage = compare(sampleStdDev(first), sampleStdDev(second), VolatilityThreshold)

	return summary
}

func filterWindow(entries []model.Entry, start, end model.Date) []model.Entry {
	out := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// sortedByDate returns a date-ascending copy; entries sharing a date keep their input order.
func sortedByDate(entries []model.Entry) []model.Entry {
	out := make([]model.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func scoresOf(entries []model.Entry) []float64 {
	scores := make([]float64, len(entries))
	for i, e := range entries {
		scores[i] = e.SentimentScore
	}
	return scores
}

// splitHalves cuts at len/2; an odd element lands in the second half.
func splitHalves(values []float64) (first, second []float64) {
	mid := len(values) / 2
	return values[:mid], values[mid:]
}

// compare classifies second against first. An empty half has already
// collapsed to 0, so a lone value is measured against zero.
func compare(first, second, threshold float64) (Direction, float64) {
	delta := second - first

	var pct float64
	if first != 0 {
		pct = math.Abs(delta/first) * 100
	}

	switch {
	case delta > threshold:
		return Up, pct
	case delta < -threshold:
		return Down, pct
	default:
		return Stable, pct
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev uses the n-1 denominator and is 0 below two values.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		sq += (v - m) * (v - m)
	}
	return math.Sqrt(sq / float64(len(values)-1))
}

func tagBreakdown(window []model.Entry) []TagBreakdown {
	groups := make(map[string][]float64)
	for _, e := range window {
		for _, tag := range e.Tags {
			groups[tag] = append(groups[tag], e.SentimentScore)
		}
	}

	out := make([]TagBreakdown, 0, len(groups))
	for tag, scores := range groups {
		first, second := splitHalves(scores)
		trend, pct := compare(mean(first), mean(second), TagThreshold)
		out = append(out, TagBreakdown{
			Tag:                 tag,
			AvgMood:             roundTo(mean(scores), 1),
			Count:               len(scores),
			PercentageOfEntries: int(roundHalfUp(float64(len(scores)) / float64(len(window)) * 100)),
			Trend:               trend,
			TrendPercentage:     pct,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

func recent(scores []float64, n int) []float64 {
	if len(scores) > n {
		scores = scores[len(scores)-n:]
	}
	out := make([]float64, len(scores))
	copy(out, scores)
	return out
}

func distribution(scores []float64) []BandCount {
	out := make([]BandCount, len(model.SentimentBands))
	for i, b := range model.SentimentBands {
		out[i] = BandCount{Band: b, Label: b.String()}
	}
	for _, s := range scores {
		out[model.BandOf(s)].Count++
	}
	return out
}

// roundHalfUp rounds .5 toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func roundTo(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return roundHalfUp(x*p) / p
}
