package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"journal-go/internal/analytics"
	"journal-go/internal/model"
)

const listSummaryWidth = 60

func labelOf(score float64) string {
	return model.SentimentLabel(score)
}

// Entry writes one entry in full.
func Entry(w io.Writer, e *model.Entry) error {
	heading.Fprint(w, e.Date.String())
	fmt.Fprintf(w, "  %s %s\n", Score(e.SentimentScore), faint.Sprint(labelOf(e.SentimentScore)))
	if e.Summary != "" {
		fmt.Fprintf(w, "%s\n", e.Summary)
	}
	if len(e.Tags) > 0 {
		fmt.Fprintf(w, "Areas: %s\n", strings.Join(e.Tags, ", "))
	}
	fmt.Fprintf(w, "Memory weight: %d/%d\n\n", e.MemoryWeight, model.MaxMemoryWeight)
	_, err := fmt.Fprintln(w, e.Content)
	return err
}

// Entries writes one row per entry, in the order given.
func Entries(w io.Writer, entries []model.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No entries yet.")
		return err
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Date.String(),
			Score(e.SentimentScore),
			strings.Join(e.Tags, ", "),
			truncate(e.Summary, listSummaryWidth),
		})
	}
	return Table(w, []string{"Date", "Mood", "Areas", "Summary"}, rows)
}

// Tags writes tag usage counts.
func Tags(w io.Writer, tags []analytics.TagCount) error {
	if len(tags) == 0 {
		_, err := fmt.Fprintln(w, "No tagged entries yet.")
		return err
	}

	rows := make([][]string, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, []string{t.Tag, strconv.Itoa(t.Count)})
	}
	return Table(w, []string{"Area", "Entries"}, rows)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
