package analytics

import "journal-go/internal/model"

// DayCell is one square of the calendar grid. A zero Date is a padding cell.
type DayCell struct {
	Date      model.Date `json:"date"`
	Sentiment *float64   `json:"sentiment"`
	HasEntry  bool       `json:"has_entry"`
	IsFuture  bool       `json:"is_future"`
}

// BuildGrid lays entries out as Monday-first weeks running from the week of
// the oldest entry through the week containing today. Row 0 is the current
// week. No entries means no rows.
func BuildGrid(entries []model.Entry, today model.Date) [][]DayCell {
	if len(entries) == 0 {
		return [][]DayCell{}
	}

	oldest := entries[0].Date
	byDate := make(map[model.Date]float64, len(entries))
	for _, e := range entries {
		if e.Date.Before(oldest) {
			oldest = e.Date
		}
		if _, seen := byDate[e.Date]; !seen {
			byDate[e.Date] = e.SentimentScore
		}
	}

	start := oldest.AddDays(-oldest.MondayIndex())
	end := today.AddDays(6 - today.MondayIndex())

	weeks := [][]DayCell{}
	var week []DayCell
	for d := start; !d.After(end); d = d.AddDays(1) {
		cell := DayCell{Date: d, IsFuture: d.After(today)}
		if score, ok := byDate[d]; ok {
			s := score
			cell.Sentiment = &s
			cell.HasEntry = true
		}
		week = append(week, cell)
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = nil
		}
	}

	for i, j := 0, len(weeks)-1; i < j; i, j = i+1, j-1 {
		weeks[i], weeks[j] = weeks[j], weeks[i]
	}
	return weeks
}
