package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"journal-go/internal/analytics"
)

// Trends writes the summary lines, the sentiment distribution and the tag
// breakdown table.
func Trends(w io.Writer, s analytics.TrendSummary) error {
	heading.Fprintf(w, "Trends %s to %s (%d days)\n\n", s.StartDate, s.EndDate, s.WindowDays)

	if s.TotalEntries == 0 {
		fmt.Fprintf(w, "No entries in the last %d days.\n", s.WindowDays)
		return nil
	}

	fmt.Fprintf(w, "Entries:      %d\n", s.TotalEntries)
	fmt.Fprintf(w, "Average mood: %s (%s)  %s\n",
		Score(s.AverageSentiment), labelOf(s.AverageSentiment), arrow(s.TrendDirection, s.TrendPercentage, true))
	fmt.Fprintf(w, "Volatility:   %.2f  %s\n",
		s.Volatility, arrow(s.VolatilityTrend, s.VolatilityTrendPercentage, false))

	recent := make([]string, len(s.RecentSentiments))
	for i, v := range s.RecentSentiments {
		recent[i] = Score(v)
	}
	fmt.Fprintf(w, "Recent:       %s\n", strings.Join(recent, " "))

	fmt.Fprintln(w)
	heading.Fprintln(w, "Distribution")
	for _, b := range s.Distribution {
		fmt.Fprintf(w, "  %-14s %3d %s\n", b.Label, b.Count, strings.Repeat("■", b.Count))
	}

	if len(s.TagBreakdown) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	heading.Fprintln(w, "Life areas")
	rows := make([][]string, 0, len(s.TagBreakdown))
	for _, t := range s.TagBreakdown {
		rows = append(rows, []string{
			t.Tag,
			Score(t.AvgMood),
			strconv.Itoa(t.Count),
			strconv.Itoa(t.PercentageOfEntries) + "%",
			arrow(t.Trend, t.TrendPercentage, true),
		})
	}
	return Table(w, []string{"Area", "Avg mood", "Entries", "Share", "Trend"}, rows)
}
