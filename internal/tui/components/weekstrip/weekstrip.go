package weekstrip

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/agenda/internal/agenda"
	"github.com/julianstephens/agenda/internal/constants"
)

// Height is the number of lines a rendered week occupies.
const Height = 2

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	highlightedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Underline(true).
			Bold(true)
)

// Render draws one week as a row of weekday labels over day numbers. Days
// with items are bright, the rest muted, today underlined.
func Render(week agenda.CalendarWeek, width int) string {
	widths := cellWidths(width)

	var labels, numbers strings.Builder
	for i, d := range week {
		cell := lipgloss.NewStyle().Width(widths[i]).MaxWidth(widths[i]).Align(lipgloss.Center)

		labels.WriteString(cell.Render(labelStyle.Render(d.Short)))

		style := mutedStyle
		if d.Highlighted {
			style = highlightedStyle
		}
		if d.IsToday {
			style = todayStyle
		}
		numbers.WriteString(cell.Render(style.Render(d.Number)))
	}
	return labels.String() + "\n" + numbers.String()
}

// cellWidths splits width into seven cells, giving the remainder to the
// leading cells.
func cellWidths(width int) [constants.DaysPerWeek]int {
	var out [constants.DaysPerWeek]int
	if width <= 0 {
		return out
	}
	base := width / constants.DaysPerWeek
	rem := width % constants.DaysPerWeek
	for i := range out {
		out[i] = base
		if i < rem {
			out[i]++
		}
	}
	return out
}
