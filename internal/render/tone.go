package render

import (
	"github.com/fatih/color"

	"journal-go/internal/analytics"
	"journal-go/internal/model"
)

var (
	positive = color.New(color.FgGreen)
	neutral  = color.New(color.FgYellow)
	negative = color.New(color.FgRed)
	faint    = color.New(color.Faint)
	heading  = color.New(color.Bold)
)

func toneColor(score float64) *color.Color {
	switch model.SentimentTone(score) {
	case model.TonePositive:
		return positive
	case model.ToneNegative:
		return negative
	default:
		return neutral
	}
}

// Score formats score with one decimal, coloured by tone.
func Score(score float64) string {
	return toneColor(score).Sprint(model.FormatSentiment(score))
}

// arrow renders a direction and its percentage, e.g. "↑ 12.5%". For
// volatility a rise is bad news, so upIsGood flips the colours.
func arrow(d analytics.Direction, pct float64, upIsGood bool) string {
	rise, fall := positive, negative
	if !upIsGood {
		rise, fall = negative, positive
	}
	switch d {
	case analytics.Up:
		return rise.Sprintf("↑ %.1f%%", pct)
	case analytics.Down:
		return fall.Sprintf("↓ %.1f%%", pct)
	default:
		return neutral.Sprint("→ stable")
	}
}
