package daylist

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/julianstephens/agenda/internal/agenda"
)

var (
	dayShortStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	dayNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	todayNumberStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	dayRowStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("238"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	descriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))
)

// Entry is an item as the agenda pane shows it.
type Entry struct {
	Time        string // empty for all-day items
	Title       string
	Description string
}

// Model renders each week page into its own vertically scrollable viewport.
type Model struct {
	pages  []viewport.Model
	width  int
	height int
}

func New() Model {
	return Model{}
}

// SetWeeks re-renders every page at the given size. Each page keeps its
// vertical position when the page count is unchanged.
func (m *Model) SetWeeks(weeks []agenda.AgendaWeek[Entry], width, height int) {
	keep := len(weeks) == len(m.pages)
	pages := make([]viewport.Model, len(weeks))
	for i, week := range weeks {
		vp := viewport.New(width, height)
		vp.SetContent(renderWeek(week, width))
		if keep {
			vp.SetYOffset(m.pages[i].YOffset)
		}
		pages[i] = vp
	}
	m.pages = pages
	m.width = width
	m.height = height
}

// Pages returns every page's visible slice, one per week.
func (m Model) Pages() []string {
	out := make([]string, len(m.pages))
	for i, vp := range m.pages {
		out[i] = vp.View()
	}
	return out
}

// ScrollDown moves page i down by n lines.
func (m *Model) ScrollDown(i, n int) {
	if i < 0 || i >= len(m.pages) {
		return
	}
	m.pages[i].LineDown(n)
}

// ScrollUp moves page i up by n lines.
func (m *Model) ScrollUp(i, n int) {
	if i < 0 || i >= len(m.pages) {
		return
	}
	m.pages[i].LineUp(n)
}

// YOffset returns page i's vertical offset.
func (m Model) YOffset(i int) int {
	if i < 0 || i >= len(m.pages) {
		return 0
	}
	return m.pages[i].YOffset
}

func renderWeek(week agenda.AgendaWeek[Entry], width int) string {
	if width <= 0 {
		return ""
	}
	var rows []string
	for _, day := range week {
		rows = append(rows, renderDay(day, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderDay(day agenda.AgendaDay[Entry], width int) string {
	// The day identifier takes a seventh of the row, the items the rest.
	idWidth := max(width/7, 4)
	contentWidth := max(width-idWidth, 1)

	number := dayNumberStyle
	if day.IsToday {
		number = todayNumberStyle
	}
	id := lipgloss.NewStyle().Width(idWidth).Align(lipgloss.Center).Render(
		lipgloss.JoinVertical(lipgloss.Center,
			dayShortStyle.Render(day.Short),
			number.Render(day.Number),
		),
	)

	cards := make([]string, 0, len(day.Entries))
	for _, e := range day.Entries {
		cards = append(cards, renderEntry(e.Output, contentWidth))
	}
	content := lipgloss.NewStyle().Width(contentWidth).Render(strings.Join(cards, "\n"))

	return dayRowStyle.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, id, content))
}

func renderEntry(e Entry, width int) string {
	// border and padding
	inner := max(width-cardStyle.GetHorizontalFrameSize(), 1)

	header := titleStyle.Render(e.Title)
	if e.Time != "" {
		header = timeStyle.Render(e.Time) + " " + header
	}

	body := []string{wordwrap.String(header, inner)}
	if e.Description != "" {
		body = append(body, descriptionStyle.Render(wordwrap.String(e.Description, inner)))
	}
	return cardStyle.Width(width - cardStyle.GetHorizontalBorderSize()).Render(strings.Join(body, "\n"))
}
