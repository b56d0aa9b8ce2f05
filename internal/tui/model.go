package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/robfig/cron/v3"

	"github.com/julianstephens/agenda/internal/agenda"
	"github.com/julianstephens/agenda/internal/constants"
	"github.com/julianstephens/agenda/internal/logger"
	"github.com/julianstephens/agenda/internal/models"
	"github.com/julianstephens/agenda/internal/storage"
	"github.com/julianstephens/agenda/internal/tui/components/daylist"
	"github.com/julianstephens/agenda/internal/tui/components/pager"
)

const loadTimeout = 10 * time.Second

type SessionState int

const (
	StateBrowse SessionState = iota
	StateWindowForm
)

// Settings configures a Model.
type Settings struct {
	PastWeeks   int
	FutureWeeks int
	WeekStart   time.Weekday
	Location    *time.Location
	// Today is fixed for the session. Zero means now in Location.
	Today time.Time
	// Refresh schedules periodic reloads; nil disables them.
	Refresh cron.Schedule
}

type WindowFormModel struct {
	PastWeeks   string
	FutureWeeks string
}

type itemsLoadedMsg struct {
	seq   int
	items models.ItemsByDate
	err   error
}

type snapTickMsg struct {
	pane agenda.Pane
	gen  int
}

type refreshMsg time.Time

type Model struct {
	store     storage.Provider
	container *agenda.Container[models.Item, daylist.Entry]
	calendar  *pager.Model
	list      *pager.Model
	days      daylist.Model
	weekPages []string

	state      SessionState
	keys       KeyMap
	help       help.Model
	form       *huh.Form
	windowForm *WindowFormModel

	loc      *time.Location
	schedule cron.Schedule

	focus    agenda.Pane
	dragging agenda.Pane
	snapGen  [3]int // indexed by agenda.Pane
	loadSeq  int

	positioned bool
	itemCount  int
	loading    bool
	err        error
	quitting   bool
	width      int
	height     int
}

func NewModel(store storage.Provider, s Settings) (Model, error) {
	if s.Location == nil {
		s.Location = time.Local
	}
	if s.Today.IsZero() {
		s.Today = time.Now().In(s.Location)
	}

	calendar := pager.New(agenda.PaneCalendar)
	list := pager.New(agenda.PaneAgenda)

	container, err := agenda.New(
		models.ItemsByDate{},
		models.Item.Key,
		renderItem,
		agenda.WithWindow(s.PastWeeks, s.FutureWeeks),
		agenda.WithToday(s.Today),
		agenda.WithWeekStart(s.WeekStart),
		agenda.WithControllers(calendar, list),
	)
	if err != nil {
		return Model{}, err
	}
	calendar.OnScroll(container.OnScroll)
	list.OnScroll(container.OnScroll)
	calendar.SetPages(container.PageCount())
	list.SetPages(container.PageCount())

	return Model{
		store:     store,
		container: container,
		calendar:  calendar,
		list:      list,
		days:      daylist.New(),
		state:     StateBrowse,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		loc:       s.Location,
		schedule:  s.Refresh,
		focus:     agenda.PaneAgenda,
		loading:   true,
	}, nil
}

func renderItem(item models.Item) daylist.Entry {
	e := daylist.Entry{
		Title:       item.Title,
		Description: item.Description,
	}
	if !item.AllDay {
		e.Time = item.Date.Format("15:04")
	}
	return e
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadItems(), m.scheduleRefresh())
}

// loadItems queries the store for the whole window.
func (m Model) loadItems() tea.Cmd {
	store := m.store
	window := m.container.Window()
	loc := m.loc
	seq := m.loadSeq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		items, err := store.Items(ctx, window.Start(), window.End())
		if err != nil {
			return itemsLoadedMsg{seq: seq, err: err}
		}
		return itemsLoadedMsg{seq: seq, items: models.GroupByDate(items, loc)}
	}
}

func (m Model) scheduleRefresh() tea.Cmd {
	if m.schedule == nil {
		return nil
	}
	now := time.Now()
	next := m.schedule.Next(now)
	if next.IsZero() {
		return nil
	}
	return tea.Tick(next.Sub(now), func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func snapTick(p agenda.Pane, gen int) tea.Cmd {
	return tea.Tick(constants.SnapFrameInterval, func(time.Time) tea.Msg {
		return snapTickMsg{pane: p, gen: gen}
	})
}

func (m *Model) pager(p agenda.Pane) *pager.Model {
	switch p {
	case agenda.PaneCalendar:
		return m.calendar
	case agenda.PaneAgenda:
		return m.list
	default:
		return nil
	}
}

// beginGesture makes p the drag owner and halts any snap still running on
// either pane.
func (m *Model) beginGesture(p agenda.Pane) {
	m.calendar.Stop()
	m.list.Stop()
	m.snapGen[agenda.PaneCalendar]++
	m.snapGen[agenda.PaneAgenda]++
	m.container.OnDragStart(p)
}

// turnPage pages pane p by delta as a user gesture of that pane.
func (m *Model) turnPage(p agenda.Pane, delta int) tea.Cmd {
	return m.goToPage(p, m.pager(p).Page()+delta)
}

func (m *Model) goToPage(p agenda.Pane, page int) tea.Cmd {
	pg := m.pager(p)
	if pg == nil || pg.Width() == 0 {
		return nil
	}
	page = min(max(page, 0), m.container.PageCount()-1)
	m.beginGesture(p)
	pg.ScrollToPage(page, true)
	return snapTick(p, m.snapGen[p])
}

// currentPage is the week the agenda pane rests on.
func (m Model) currentPage() int {
	return m.list.Page()
}

// layout sizes both panes for the terminal and re-renders every page.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	cw := max(m.width-2*calendarPadding, constants.DaysPerWeek)
	aw := max(m.width, 1)

	m.calendar.SetWidth(cw)
	m.list.SetWidth(aw)
	m.container.OnLayout(agenda.PaneCalendar, float64(cw))
	m.container.OnLayout(agenda.PaneAgenda, float64(aw))

	n := m.container.PageCount()
	m.calendar.SetPages(n)
	m.list.SetPages(n)

	if !m.positioned {
		m.positionToday()
		m.positioned = true
	}
	m.renderPages()
}

// positionToday puts both panes on today's week directly, outside of sync.
func (m *Model) positionToday() {
	today := m.container.TodayPage()
	m.calendar.Position(today)
	m.list.Position(today)
}

func (m *Model) renderPages() {
	cw := m.calendar.Width()
	pages := m.container.CalendarPages()
	m.weekPages = make([]string, len(pages))
	for i, week := range pages {
		m.weekPages[i] = renderWeekPage(week, cw)
	}
	m.days.SetWeeks(m.container.AgendaPages(), m.list.Width(), m.agendaHeight())
}

func (m Model) helpHeight() int {
	return strings.Count(m.help.View(m.keys), "\n") + 1
}

// agendaHeight is what remains below the title, strip, rule and status line.
func (m Model) agendaHeight() int {
	return max(m.height-1-calendarHeight-1-1-m.helpHeight(), 1)
}

// paneAt maps a terminal row to the pane drawn there.
func (m Model) paneAt(y int) agenda.Pane {
	switch {
	case y >= 1 && y < 1+calendarHeight:
		return agenda.PaneCalendar
	case y >= 2+calendarHeight && y < 2+calendarHeight+m.agendaHeight():
		return agenda.PaneAgenda
	default:
		return agenda.PaneNone
	}
}

func (m *Model) openWindowForm() tea.Cmd {
	w := m.container.Window()
	m.windowForm = &WindowFormModel{
		PastWeeks:   strconv.Itoa(w.PastWeeks),
		FutureWeeks: strconv.Itoa(w.FutureWeeks),
	}
	m.form = NewWindowForm(m.windowForm)
	m.state = StateWindowForm
	return m.form.Init()
}

// applyWindow rebuilds the grid for new week counts and reloads items.
func (m *Model) applyWindow(past, future int) tea.Cmd {
	changed, err := m.container.SetWindow(past, future)
	if err != nil {
		m.err = err
		return nil
	}
	if !changed {
		return nil
	}
	logger.Info("window changed", "past", past, "future", future)
	m.positioned = false
	m.layout()
	return m.reload()
}

func (m *Model) reload() tea.Cmd {
	m.loadSeq++
	m.loading = true
	return m.loadItems()
}

// NewWindowForm asks for the number of weeks before and after today.
func NewWindowForm(fm *WindowFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Past weeks").
				Description("Weeks shown before the current one").
				Value(&fm.PastWeeks).
				Validate(validateWeeks),
			huh.NewInput().
				Title("Future weeks").
				Description("Weeks shown after the current one").
				Value(&fm.FutureWeeks).
				Validate(validateWeeks),
		),
	)
}

func validateWeeks(s string) error {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number of weeks")
	}
	if i < 0 {
		return fmt.Errorf("weeks must not be negative")
	}
	return nil
}
