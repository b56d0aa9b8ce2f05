package daylist

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/julianstephens/agenda/internal/agenda"
)

func testWeeks(t *testing.T) []agenda.AgendaWeek[Entry] {
	t.Helper()
	today := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	items := map[string][]Entry{
		"2023-02-01": {
			{Time: "09:30", Title: "Standup", Description: "Daily sync with the team"},
			{Title: "Holiday"},
		},
	}
	c, err := agenda.New(items,
		func(e Entry) string { return e.Title },
		func(e Entry) Entry { return e },
		agenda.WithWindow(1, 1),
		agenda.WithToday(today),
	)
	if err != nil {
		t.Fatalf("agenda.New: %v", err)
	}
	return c.AgendaPages()
}

func TestSetWeeks(t *testing.T) {
	m := New()
	m.SetWeeks(testWeeks(t), 60, 40)

	pages := m.Pages()
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}

	current := ansi.Strip(pages[1])
	for _, want := range []string{"Wed", "01", "09:30", "Standup", "Daily sync", "Holiday"} {
		if !strings.Contains(current, want) {
			t.Errorf("current week missing %q", want)
		}
	}
	if strings.Contains(ansi.Strip(pages[0]), "Standup") {
		t.Error("previous week shows an item from the current week")
	}
	for i, line := range strings.Split(current, "\n") {
		if w := ansi.StringWidth(line); w > 60 {
			t.Errorf("line %d is %d cells wide, want at most 60", i, w)
		}
	}
}

func TestScroll(t *testing.T) {
	m := New()
	weeks := testWeeks(t)
	m.SetWeeks(weeks, 60, 5)

	m.ScrollDown(1, 2)
	if got := m.YOffset(1); got != 2 {
		t.Fatalf("YOffset(1) = %d, want 2", got)
	}
	if got := m.YOffset(0); got != 0 {
		t.Errorf("YOffset(0) = %d, want 0", got)
	}

	m.SetWeeks(weeks, 60, 5)
	if got := m.YOffset(1); got != 2 {
		t.Errorf("YOffset(1) after re-render = %d, want 2", got)
	}

	m.ScrollUp(1, 1)
	if got := m.YOffset(1); got != 1 {
		t.Errorf("YOffset(1) = %d, want 1", got)
	}
}

func TestScrollOutOfRange(t *testing.T) {
	m := New()
	m.SetWeeks(testWeeks(t), 60, 5)

	m.ScrollDown(-1, 1)
	m.ScrollUp(10, 1)
	if got := m.YOffset(10); got != 0 {
		t.Errorf("YOffset(10) = %d, want 0", got)
	}
}
