package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Entry is one user's journal entry for one calendar date.
// At most one entry exists per (UserID, Date).
type Entry struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Date           Date      `json:"date"`
	Content        string    `json:"content"`
	Summary        string    `json:"summary"`
	SentimentScore float64   `json:"sentiment_score"` // -5 (very negative) to +5 (very positive)
	Tags           []string  `json:"tags"`
	MemoryWeight   int       `json:"memory_weight"` // 1-10
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Analysis is what the sentiment analyzer extracts from an entry's content.
type Analysis struct {
	SentimentScore float64  `json:"sentiment_score"`
	Summary        string   `json:"summary"`
	Tags           []string `json:"tags"`
	MemoryWeight   float64  `json:"memory_weight"`
}

const (
	MinSentiment    = -5.0
	MaxSentiment    = 5.0
	MinMemoryWeight = 1
	MaxMemoryWeight = 10
)

// Clamp forces the score into [-5, 5] and the memory weight to an integer in [1, 10].
func (a Analysis) Clamp() Analysis {
	a.SentimentScore = math.Max(MinSentiment, math.Min(MaxSentiment, a.SentimentScore))
	w := math.Round(a.MemoryWeight)
	a.MemoryWeight = math.Max(MinMemoryWeight, math.Min(MaxMemoryWeight, w))
	return a
}

// LifeAreas is the tag vocabulary entries are classified into.
var LifeAreas = []string{
	"Self",
	"Career",
	"Social Life",
	"Partner",
	"Energy",
	"Purpose",
	"Family",
	"Environment",
}

// NormalizeTags keeps only LifeAreas members (case-insensitive), using the
// canonical spelling, without duplicates, in input order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool)
	for _, raw := range tags {
		raw = strings.TrimSpace(raw)
		for _, area := range LifeAreas {
			if strings.EqualFold(raw, area) && !seen[area] {
				seen[area] = true
				out = append(out, area)
			}
		}
	}
	return out
}

// ValidateEntry rejects entries that would corrupt aggregates.
func ValidateEntry(e *Entry) error {
	if e.Date.IsZero() {
		return fmt.Errorf("entry has no date")
	}
	if math.IsNaN(e.SentimentScore) || math.IsInf(e.SentimentScore, 0) {
		return fmt.Errorf("entry for %s has non-finite sentiment score", e.Date)
	}
	if e.SentimentScore < MinSentiment || e.SentimentScore > MaxSentiment {
		return fmt.Errorf("entry for %s has sentiment score %v outside [%v, %v]", e.Date, e.SentimentScore, MinSentiment, MaxSentiment)
	}
	if e.MemoryWeight < MinMemoryWeight || e.MemoryWeight > MaxMemoryWeight {
		return fmt.Errorf("entry for %s has memory weight %d outside [%d, %d]", e.Date, e.MemoryWeight, MinMemoryWeight, MaxMemoryWeight)
	}
	return nil
}

// BackupOperation records one attempt to snapshot the database to a vault.
// Its ID doubles as the snapshot version.
type BackupOperation struct {
	ID         int64
	Operation  string
	Status     string // "running", "success" or "error"
	StartedAt  time.Time
	FinishedAt *time.Time
}
