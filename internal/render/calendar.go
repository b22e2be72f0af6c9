package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"journal-go/internal/analytics"
	"journal-go/internal/model"
)

var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

const cellWidth = 4

// Calendar writes the grid as Monday-first weeks, current week on top. Days
// with an entry are coloured by tone; future days are left blank.
func Calendar(w io.Writer, grid [][]analytics.DayCell) error {
	if len(grid) == 0 {
		_, err := fmt.Fprintln(w, "No entries yet.")
		return err
	}

	r := lipgloss.NewRenderer(w)
	base := r.NewStyle().Width(cellWidth).Align(lipgloss.Right)
	header := base.Bold(true)
	empty := base.Faint(true)
	tones := map[model.Tone]lipgloss.Style{
		model.TonePositive: base.Foreground(lipgloss.Color("2")),
		model.ToneNeutral:  base.Foreground(lipgloss.Color("3")),
		model.ToneNegative: base.Foreground(lipgloss.Color("1")),
	}

	rows := make([]string, 0, len(grid)+1)

	cells := make([]string, 0, 8)
	cells = append(cells, r.NewStyle().Width(8).Render(""))
	for _, name := range weekdayNames {
		cells = append(cells, header.Render(name))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))

	for _, week := range grid {
		cells = cells[:0]
		cells = append(cells, r.NewStyle().Width(8).Faint(true).Render(weekLabel(week)))
		for _, cell := range week {
			day := strconv.Itoa(cell.Date.Day())
			switch {
			case cell.IsFuture:
				cells = append(cells, base.Render(""))
			case cell.HasEntry && cell.Sentiment != nil:
				cells = append(cells, tones[model.SentimentTone(*cell.Sentiment)].Render(day))
			default:
				cells = append(cells, empty.Render("·"))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, rows...))
	return err
}

// weekLabel is the month and day of the week's Monday, e.g. "Jan 08".
func weekLabel(week []analytics.DayCell) string {
	if len(week) == 0 || week[0].Date.IsZero() {
		return ""
	}
	return week[0].Date.Time().Format("Jan 02")
}
