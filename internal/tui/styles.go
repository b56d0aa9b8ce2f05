package tui

import "github.com/charmbracelet/lipgloss"

// calendarPadding is the horizontal padding around the week strip. It makes
// the strip's page width differ from the agenda's.
const calendarPadding = 2

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	calendarStyle = lipgloss.NewStyle().
			Padding(0, calendarPadding)

	focusedRuleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("62"))

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("236"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)
