package model

import "strconv"

// SentimentBand buckets a score into one of five labelled ranges.
type SentimentBand int

const (
	VeryNegative SentimentBand = iota
	Negative
	Neutral
	Positive
	VeryPositive
)

// SentimentBands lists the bands from most negative to most positive.
var SentimentBands = []SentimentBand{VeryNegative, Negative, Neutral, Positive, VeryPositive}

// BandOf returns the band for score.
func BandOf(score float64) SentimentBand {
	switch {
	case score <= -3:
		return VeryNegative
	case score <= -1:
		return Negative
	case score <= 1:
		return Neutral
	case score <= 3:
		return Positive
	default:
		return VeryPositive
	}
}

func (b SentimentBand) String() string {
	switch b {
	case VeryNegative:
		return "Very Negative"
	case Negative:
		return "Negative"
	case Neutral:
		return "Neutral"
	case Positive:
		return "Positive"
	case VeryPositive:
		return "Very Positive"
	default:
		return "Unknown"
	}
}

// SentimentLabel returns the human label for score.
func SentimentLabel(score float64) string {
	return BandOf(score).String()
}

// Tone is the coarse three-way reading of a score used for colouring.
type Tone string

const (
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
	TonePositive Tone = "positive"
)

// SentimentTone maps score onto [0,1] and splits at 0.4 and 0.6.
func SentimentTone(score float64) Tone {
	normalized := (score + 5) / 10
	switch {
	case normalized < 0.4:
		return ToneNegative
	case normalized > 0.6:
		return TonePositive
	default:
		return ToneNeutral
	}
}

// FormatSentiment renders a score with one decimal place.
func FormatSentiment(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}
