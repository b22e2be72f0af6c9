package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"journal-go/internal/model"
)

type rawAnalysis struct {
	SentimentScore *float64  `json:"sentiment_score"`
	Summary        *string   `json:"summary"`
	Tags           *[]string `json:"tags"`
	MemoryWeight   *float64  `json:"memory_weight"`
}

// ParseAnalysis extracts the first JSON object from a model reply, checks
// that every field is present with the right type, and clamps the result.
// Tags outside the life-area vocabulary are dropped.
func ParseAnalysis(text string) (model.Analysis, error) {
	start := strings.Index(text, "{")
	if start < 0 {
		return model.Analysis{}, fmt.Errorf("no JSON object in response")
	}

	var raw rawAnalysis
	dec := json.NewDecoder(strings.NewReader(text[start:]))
	if err := dec.Decode(&raw); err != nil {
		return model.Analysis{}, fmt.Errorf("invalid analysis JSON: %w", err)
	}

	switch {
	case raw.SentimentScore == nil:
		return model.Analysis{}, fmt.Errorf("invalid analysis: missing sentiment_score")
	case raw.Summary == nil:
		return model.Analysis{}, fmt.Errorf("invalid analysis: missing summary")
	case raw.Tags == nil:
		return model.Analysis{}, fmt.Errorf("invalid analysis: missing tags")
	case raw.MemoryWeight == nil:
		return model.Analysis{}, fmt.Errorf("invalid analysis: missing memory_weight")
	}

	a := model.Analysis{
		SentimentScore: *raw.SentimentScore,
		Summary:        strings.TrimSpace(*raw.Summary),
		Tags:           model.NormalizeTags(*raw.Tags),
		MemoryWeight:   *raw.MemoryWeight,
	}
	return a.Clamp(), nil
}
