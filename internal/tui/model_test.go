package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/julianstephens/agenda/internal/agenda"
	"github.com/julianstephens/agenda/internal/models"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

type fakeStore struct {
	items []models.Item
	err   error
	calls int
}

func (s *fakeStore) Load() error  { return nil }
func (s *fakeStore) Close() error { return nil }
func (s *fakeStore) Describe() string {
	return "fake"
}

func (s *fakeStore) Items(_ context.Context, start, end time.Time) ([]models.Item, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Item
	for _, item := range s.items {
		if !item.Date.Before(start) && item.Date.Before(end.AddDate(0, 0, 1)) {
			out = append(out, item)
		}
	}
	return out, nil
}

var testToday = time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, store *fakeStore) Model {
	t.Helper()
	m, err := NewModel(store, Settings{
		PastWeeks:   1,
		FutureWeeks: 1,
		WeekStart:   time.Monday,
		Location:    time.UTC,
		Today:       testToday,
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	return m
}

// settle feeds snap frames to p until its animation finishes.
func settle(t *testing.T, m Model, p agenda.Pane) Model {
	t.Helper()
	for i := 0; m.pager(p).Animating(); i++ {
		if i > 100 {
			t.Fatal("snap did not settle")
		}
		m, _ = update(t, m, snapTickMsg{pane: p, gen: m.snapGen[p]})
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelInvalidWindow(t *testing.T) {
	_, err := NewModel(&fakeStore{}, Settings{PastWeeks: -1})
	if !errors.Is(err, agenda.ErrInvalidArgument) {
		t.Errorf("NewModel() error = %v, want ErrInvalidArgument", err)
	}
}

func TestLayoutPositionsToday(t *testing.T) {
	m := sized(t, newTestModel(t, &fakeStore{}))

	if got := m.calendar.Width(); got != 76 {
		t.Errorf("calendar width = %d, want 76", got)
	}
	if got := m.list.Width(); got != 80 {
		t.Errorf("agenda width = %d, want 80", got)
	}
	if m.calendar.Page() != 1 || m.list.Page() != 1 {
		t.Errorf("pages = %d/%d, want 1/1", m.calendar.Page(), m.list.Page())
	}
	if s := m.container.Sync(); s.Width(agenda.PaneCalendar) != 76 || s.Width(agenda.PaneAgenda) != 80 {
		t.Errorf("sync widths = %v/%v", s.Width(agenda.PaneCalendar), s.Width(agenda.PaneAgenda))
	}
}

func TestResizeKeepsPage(t *testing.T) {
	m := sized(t, newTestModel(t, &fakeStore{}))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})

	if m.calendar.Page() != 1 || m.list.Page() != 1 {
		t.Errorf("pages after resize = %d/%d, want 1/1", m.calendar.Page(), m.list.Page())
	}
	if got := m.list.Offset(); got != 120 {
		t.Errorf("agenda offset = %v, want 120", got)
	}
}

func TestItemsLoaded(t *testing.T) {
	store := &fakeStore{items: []models.Item{
		{ID: "1", Title: "Dentist", Date: time.Date(2023, 2, 1, 9, 0, 0, 0, time.UTC)},
		{ID: "2", Title: "Far away", Date: time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)},
	}}
	m := sized(t, newTestModel(t, store))

	m, _ = update(t, m, m.loadItems()())

	if m.loading {
		t.Error("loading still set")
	}
	if m.itemCount != 1 {
		t.Errorf("itemCount = %d, want 1", m.itemCount)
	}
	if !m.container.Highlighted("2023-02-01") {
		t.Error("2023-02-01 not highlighted")
	}

	view := ansi.Strip(m.View())
	for _, want := range []string{"January 2023", "fake", "Dentist", "09:00", "1 items"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestItemsLoadError(t *testing.T) {
	m := sized(t, newTestModel(t, &fakeStore{err: errors.New("boom")}))

	m, _ = update(t, m, m.loadItems()())

	if m.err == nil {
		t.Fatal("err not set")
	}
	if !strings.Contains(ansi.Strip(m.View()), "boom") {
		t.Error("view does not show the load error")
	}
}

func TestStaleLoadIgnored(t *testing.T) {
	store := &fakeStore{items: []models.Item{
		{ID: "1", Title: "Dentist", Date: time.Date(2023, 2, 1, 9, 0, 0, 0, time.UTC)},
	}}
	m := sized(t, newTestModel(t, store))
	stale := m.loadItems()()
	m.reload()

	m, _ = update(t, m, stale)

	if !m.loading {
		t.Error("stale load cleared loading")
	}
	if m.container.Highlighted("2023-02-01") {
		t.Error("stale load applied items")
	}
}

func TestAgendaDragDrivesCalendar(t *testing.T) {
	m := sized(t, newTestModel(t, &fakeStore{}))
	y := 2 + calendarHeight + 1

	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.container.Sync().State(); got != agenda.StateDraggingAgenda {
		t.Fatalf("state = %v, want dragging-agenda", got)
	}

	m, _ = update(t, m, tea.MouseMsg{X: 20, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if got := m.list.Offset(); got != 100 {
		t.Errorf("agenda offset = %v, want 100", got)
	}
	if got := m.calendar.Offset(); got != 95 {
		t.Errorf("calendar offset = %v, want 95", got)
	}

	m, cmd := update(t, m, tea.MouseMsg{X: 20, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if cmd == nil {
		t.Fatal("release did not schedule a snap")
	}
	m = settle(t, m, agenda.PaneAgenda)

	if got := m.list.Offset(); got != 80 {
		t.Errorf("agenda offset after snap = %v, want 80", got)
	}
	if got := m.calendar.Offset(); got != 76 {
		t.Errorf("calendar offset after snap = %v, want 76", got)
	}
	if got := m.container.Sync().State(); got != agenda.StateIdle {
		t.Errorf("state after snap = %v, want idle", got)
	}
}

func TestCalendarDragDrivesAgenda(t *testing.T) {
	m := sized(t, newTestModel(t, &fakeStore{}))

	m, _ = update(t, m, tea.MouseMsg{X: 60, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.focus != agenda.PaneCalendar {
		t.Errorf("focus = %v, want calendar", m.focus)
	}
	m, _ = update(t, m, tea.MouseMsg{X: 22, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 22, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m = settle(t, m, agenda.PaneCalendar)

	if m.calendar.Page() != 2 || m.list.Page() != 2 {
		t.Errorf("pages = %d/%d, want 2/2", m.calendar.Page(), m.list.Page())
	}
	if got := m.list.Offset(); got != 160 {
		t.Errorf("agenda offset = %v, want 160", got)
	}
}

func TestKeyboardPaging(t *testing.T) {
	m := sized(t, newTestModel(t, &fakeStore{}))

	m, cmd := update(t, m, runes("l"))
	if cmd == nil {
		t.Fatal("next page did not schedule a snap")
	}
	m = settle(t, m, agenda.PaneAgenda)
	if m.calendar.Page() != 2 || m.list.Page() != 2 {
		t.Errorf("pages after next = %d/%d, want 2/2", m.calendar.Page(), m.list.Page())
	}
	if got := m.container.Sync().State(); got != agenda.StateIdle {
		t.Errorf("state = %v, want idle", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != agenda.PaneCalendar {
		t.Fatalf("focus = %v, want calendar", m.focus)
	}
	m, _ = update(t, m, runes("h"))
	m = settle(t, m, agenda.PaneCalendar)
	if m.calendar.Page() != 1 || m.list.Page() != 1 {
		t.Errorf("pages after prev = %d/%d, want 1/1", m.calendar.Page(), m.list.Page())
	}

	m, _ = update(t, m, runes("h"))
	m = settle(t, m, agenda.PaneCalendar)
	m, _ = update(t, m, runes("h"))
	m = settle(t, m, agenda.PaneCalendar)
	if m.calendar.Page() != 0 || m.list.Page() != 0 {
		t.Errorf("pages past the start = %d/%d, want 0/0", m.calendar.Page(), m.list.Page())
	}

	m, _ = update(t, m, runes("t"))
	m = settle(t, m, agenda.PaneCalendar)
	if m.calendar.Page() != 1 || m.list.Page() != 1 {
		t.Errorf("pages after today = %d/%d, want 1/1", m.calendar.Page(), m.list.Page())
	}
}

func TestPagingBeforeLayout(t *testing.T) {
	m := newTestModel(t, &fakeStore{})
	_, cmd := update(t, m, runes("l"))
	if cmd != nil {
		t.Error("paging an unmeasured pane scheduled a snap")
	}
	if got := m.container.Sync().State(); got != agenda.StateIdle {
		t.Errorf("state = %v, want idle", got)
	}
}

func TestStaleSnapTickIgnored(t *testing.T) {
	m := sized(t, newTestModel(t, &fakeStore{}))
	m, _ = update(t, m, runes("l"))
	gen := m.snapGen[agenda.PaneAgenda]

	// a new gesture supersedes the snap
	m.beginGesture(agenda.PaneCalendar)
	before := m.list.Offset()
	m, _ = update(t, m, snapTickMsg{pane: agenda.PaneAgenda, gen: gen})

	if m.list.Offset() != before {
		t.Errorf("stale tick moved the agenda from %v to %v", before, m.list.Offset())
	}
	if got := m.container.Sync().Owner(); got != agenda.PaneCalendar {
		t.Errorf("owner = %v, want calendar", got)
	}
}

func TestWheelScrollsAgenda(t *testing.T) {
	m, _ := update(t, newTestModel(t, &fakeStore{}), tea.WindowSizeMsg{Width: 80, Height: 12})
	y := 2 + calendarHeight + 1

	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})

	if got := m.days.YOffset(1); got != wheelLines {
		t.Errorf("YOffset = %d, want %d", got, wheelLines)
	}
}

func TestApplyWindow(t *testing.T) {
	store := &fakeStore{}
	m := sized(t, newTestModel(t, store))

	cmd := m.applyWindow(2, 2)
	if cmd == nil {
		t.Fatal("window change did not reload")
	}
	if got := m.container.PageCount(); got != 5 {
		t.Errorf("PageCount() = %d, want 5", got)
	}
	if m.calendar.Page() != 2 || m.list.Page() != 2 {
		t.Errorf("pages = %d/%d, want 2/2", m.calendar.Page(), m.list.Page())
	}
	if m.loadSeq != 1 || !m.loading {
		t.Errorf("loadSeq = %d loading = %v, want a pending reload", m.loadSeq, m.loading)
	}

	if cmd := m.applyWindow(2, 2); cmd != nil {
		t.Error("unchanged window reloaded")
	}
}

func TestWindowFormEscape(t *testing.T) {
	m := sized(t, newTestModel(t, &fakeStore{}))

	m, _ = update(t, m, runes("w"))
	if m.state != StateWindowForm {
		t.Fatalf("state = %v, want window form", m.state)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateBrowse {
		t.Errorf("state = %v, want browse", m.state)
	}
}

func TestPaneAt(t *testing.T) {
	m := sized(t, newTestModel(t, &fakeStore{}))
	tests := []struct {
		y    int
		want agenda.Pane
	}{
		{0, agenda.PaneNone},
		{1, agenda.PaneCalendar},
		{calendarHeight, agenda.PaneCalendar},
		{1 + calendarHeight, agenda.PaneNone},
		{2 + calendarHeight, agenda.PaneAgenda},
		{29, agenda.PaneNone},
	}
	for _, tt := range tests {
		if got := m.paneAt(tt.y); got != tt.want {
			t.Errorf("paneAt(%d) = %v, want %v", tt.y, got, tt.want)
		}
	}
}

func TestRenderItem(t *testing.T) {
	timed := renderItem(models.Item{Title: "Call", Date: time.Date(2023, 2, 1, 14, 5, 0, 0, time.UTC)})
	if timed.Time != "14:05" {
		t.Errorf("Time = %q, want 14:05", timed.Time)
	}
	allDay := renderItem(models.Item{Title: "Trip", AllDay: true})
	if allDay.Time != "" {
		t.Errorf("all-day Time = %q, want empty", allDay.Time)
	}
}

func TestValidateWeeks(t *testing.T) {
	for _, in := range []string{"0", " 3 ", "52"} {
		if err := validateWeeks(in); err != nil {
			t.Errorf("validateWeeks(%q) = %v", in, err)
		}
	}
	for _, in := range []string{"", "-1", "two"} {
		if err := validateWeeks(in); err == nil {
			t.Errorf("validateWeeks(%q) = nil, want error", in)
		}
	}
}

func TestQuit(t *testing.T) {
	m := sized(t, newTestModel(t, &fakeStore{}))
	m, cmd := update(t, m, runes("q"))
	if !m.quitting || cmd == nil {
		t.Error("q did not quit")
	}
	if m.View() != "" {
		t.Error("view not empty after quit")
	}
}
