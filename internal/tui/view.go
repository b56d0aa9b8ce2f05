package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/agenda/internal/agenda"
	apperrors "github.com/julianstephens/agenda/internal/errors"
	"github.com/julianstephens/agenda/internal/tui/components/weekstrip"
)

const calendarHeight = weekstrip.Height

func renderWeekPage(week agenda.CalendarWeek, width int) string {
	return weekstrip.Render(week, width)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	if m.state == StateWindowForm && m.form != nil {
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			formStyle.Render(m.form.View()),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTitle(),
		calendarStyle.Render(m.calendar.View(m.weekPages, calendarHeight)),
		m.viewRule(),
		m.list.View(m.days.Pages(), m.agendaHeight()),
		m.viewStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) viewTitle() string {
	title := "Agenda"
	w := m.container.Window()
	if page := m.currentPage(); page >= 0 && page < w.Len() {
		title = w.Weeks[page].Start().Format("January 2006")
	}
	return titleStyle.Render(title) + sourceStyle.Render(m.store.Describe())
}

func (m Model) viewRule() string {
	style := ruleStyle
	if m.focus == agenda.PaneAgenda {
		style = focusedRuleStyle
	}
	return style.Render(strings.Repeat("─", max(m.width, 0)))
}

func (m Model) viewStatus() string {
	if m.err != nil {
		msg := "Error: " + m.err.Error()
		if hint := apperrors.Hint(m.err); hint != "" {
			msg += " (" + hint + ")"
		}
		return errorStyle.Render(msg)
	}
	if m.loading {
		return statusStyle.Render("Loading items...")
	}

	w := m.container.Window()
	page := m.currentPage()
	status := fmt.Sprintf("%d items · week %d of %d", m.itemCount, page+1, w.Len())
	if page == m.container.TodayPage() {
		status += " · this week"
	}
	return statusStyle.Render(status)
}
