package ai

import (
	"context"
	"strings"
	"unicode"

	"journal-go/internal/model"
)

// Word lists for the offline analyzer.
var (
	positiveWords = []string{"happy", "great", "good", "grateful", "love", "joy", "calm", "proud", "excited", "fun", "rested", "peaceful"}
	negativeWords = []string{"sad", "bad", "angry", "tired", "stressed", "anxious", "lonely", "awful", "worried", "sick", "exhausted", "upset"}

	areaKeywords = map[string][]string{
		"Self":        {"myself", "meditat", "therapy", "journal"},
		"Career":      {"work", "job", "boss", "meeting", "project", "office"},
		"Social Life": {"friend", "party", "dinner", "hangout"},
		"Partner":     {"partner", "wife", "husband", "girlfriend", "boyfriend", "date night"},
		"Energy":      {"sleep", "tired", "gym", "run", "exercise", "energy"},
		"Purpose":     {"goal", "purpose", "meaning", "volunteer"},
		"Family":      {"mom", "dad", "mother", "father", "sister", "brother", "family", "kids"},
		"Environment": {"home", "weather", "garden", "apartment", "city"},
	}
)

// TestAnalyzer is a deterministic offline Assistant. It counts sentiment
// words and keyword hits so tests and key-less runs get stable results.
type TestAnalyzer struct{}

func NewTestAnalyzer() *TestAnalyzer { return &TestAnalyzer{} }

func (t *TestAnalyzer) Analyze(_ context.Context, content string) (model.Analysis, error) {
	words := strings.FieldsFunc(strings.ToLower(content), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	score := 0.0
	for _, w := range words {
		if contains(positiveWords, w) {
			score++
		}
		if contains(negativeWords, w) {
			score--
		}
	}

	lower := strings.ToLower(content)
	var tags []string
	for _, area := range model.LifeAreas {
		for _, kw := range areaKeywords[area] {
			if strings.Contains(lower, kw) {
				tags = append(tags, area)
				break
			}
		}
	}

	a := model.Analysis{
		SentimentScore: score,
		Summary:        firstSentence(content),
		Tags:           model.NormalizeTags(tags),
		MemoryWeight:   float64(1 + len(words)/50),
	}
	return a.Clamp(), nil
}

func (t *TestAnalyzer) ReflectionPrompt(_ context.Context, content string) (string, error) {
	return "What part of today would you like to carry into tomorrow?", nil
}

func (t *TestAnalyzer) WritingStarter(_ context.Context, current string) (string, error) {
	if strings.TrimSpace(current) == "" {
		return "Today I noticed...", nil
	}
	return "Something I keep coming back to is...", nil
}

func firstSentence(content string) string {
	content = strings.TrimSpace(content)
	if i := strings.IndexAny(content, ".!?\n"); i >= 0 {
		content = content[:i+1]
	}
	const maxLen = 160
	if r := []rune(content); len(r) > maxLen {
		content = string(r[:maxLen]) + "..."
	}
	return strings.TrimSpace(content)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var _ Assistant = (*TestAnalyzer)(nil)
