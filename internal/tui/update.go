package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/agenda/internal/agenda"
	"github.com/julianstephens/agenda/internal/logger"
)

const wheelLines = 3

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case itemsLoadedMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			logger.Error("failed to load items", "source", m.store.Describe(), "error", msg.err)
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.itemCount = msg.items.Count()
		m.container.SetItems(msg.items)
		m.renderPages()
		return m, nil

	case refreshMsg:
		logger.Debug("scheduled reload", "source", m.store.Describe())
		return m, tea.Batch(m.reload(), m.scheduleRefresh())

	case snapTickMsg:
		return m.handleSnapTick(msg)
	}

	if m.state == StateWindowForm {
		return m.updateWindowForm(msg)
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Prev):
		return m, m.turnPage(m.focus, -1)
	case key.Matches(msg, m.keys.Next):
		return m, m.turnPage(m.focus, 1)
	case key.Matches(msg, m.keys.Tab):
		m.focus = m.focus.Other()
	case key.Matches(msg, m.keys.Today):
		return m, m.goToPage(m.focus, m.container.TodayPage())
	case key.Matches(msg, m.keys.Down):
		m.days.ScrollDown(m.currentPage(), 1)
	case key.Matches(msg, m.keys.Up):
		m.days.ScrollUp(m.currentPage(), 1)
	case key.Matches(msg, m.keys.Window):
		return m, m.openWindowForm()
	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		p := m.paneAt(msg.Y)
		switch msg.Button {
		case tea.MouseButtonLeft:
			if p == agenda.PaneNone {
				return m, nil
			}
			m.beginGesture(p)
			m.focus = p
			m.dragging = p
			m.pager(p).BeginDrag(msg.X)
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			if msg.Shift {
				return m, m.turnPage(target(p, m.focus), wheelDelta(msg.Button))
			}
			if p == agenda.PaneAgenda {
				if msg.Button == tea.MouseButtonWheelUp {
					m.days.ScrollUp(m.currentPage(), wheelLines)
				} else {
					m.days.ScrollDown(m.currentPage(), wheelLines)
				}
			}
		case tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
			return m, m.turnPage(target(p, m.focus), wheelDelta(msg.Button))
		}

	case tea.MouseActionMotion:
		if m.dragging != agenda.PaneNone {
			m.pager(m.dragging).DragTo(msg.X)
		}

	case tea.MouseActionRelease:
		if m.dragging == agenda.PaneNone {
			return m, nil
		}
		p := m.dragging
		m.dragging = agenda.PaneNone
		m.pager(p).EndDrag()
		m.snapGen[p]++
		return m, snapTick(p, m.snapGen[p])
	}
	return m, nil
}

func target(p, fallback agenda.Pane) agenda.Pane {
	if p == agenda.PaneNone {
		return fallback
	}
	return p
}

func wheelDelta(b tea.MouseButton) int {
	switch b {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		return -1
	default:
		return 1
	}
}

// handleSnapTick advances a page snap. The gesture ends when it settles.
func (m Model) handleSnapTick(msg snapTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.snapGen[msg.pane] {
		return m, nil
	}
	pg := m.pager(msg.pane)
	if pg == nil {
		return m, nil
	}
	if !pg.Step() {
		return m, snapTick(msg.pane, msg.gen)
	}
	m.container.OnDragEnd(msg.pane)
	return m, nil
}

func (m Model) updateWindowForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateBrowse
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		m.state = StateBrowse
		past, _ := strconv.Atoi(strings.TrimSpace(m.windowForm.PastWeeks))
		future, _ := strconv.Atoi(strings.TrimSpace(m.windowForm.FutureWeeks))
		cmds = append(cmds, m.applyWindow(past, future))
	case huh.StateAborted:
		m.state = StateBrowse
	}
	return m, tea.Batch(cmds...)
}
