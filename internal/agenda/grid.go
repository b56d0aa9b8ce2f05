// Package agenda keeps a paginated week strip and a paginated day-by-day agenda
// in lockstep. It owns the week grid, the scroll synchronization between the two
// panes, and the projection of caller items onto days. It has no terminal or
// widget dependencies; embedding UIs supply pane controllers.
package agenda

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/agenda/internal/constants"
)

// ErrInvalidArgument is returned for negative week counts and missing callbacks.
var ErrInvalidArgument = errors.New("invalid argument")

// Day is an immutable calendar day descriptor.
type Day struct {
	Date   time.Time
	Key    string // canonical date key, YYYY-MM-DD
	Short  string // short weekday label, e.g. "Wed"
	Number string // zero padded day of month, e.g. "01"
}

// Week is one page: seven consecutive days starting on the window's week start.
type Week [constants.DaysPerWeek]Day

// Start returns the first day of the week.
func (w Week) Start() time.Time { return w[0].Date }

// End returns the last day of the week.
func (w Week) End() time.Time { return w[len(w)-1].Date }

// Window is the ordered set of weeks shown by both panes.
type Window struct {
	Today       time.Time
	PastWeeks   int
	FutureWeeks int
	WeekStart   time.Weekday
	Weeks       []Week
}

// Len returns the number of pages in the window.
func (w Window) Len() int { return len(w.Weeks) }

// Start returns the first day in the window, or the zero time for an empty window.
func (w Window) Start() time.Time {
	if len(w.Weeks) == 0 {
		return time.Time{}
	}
	return w.Weeks[0].Start()
}

// End returns the last day in the window, or the zero time for an empty window.
func (w Window) End() time.Time {
	if len(w.Weeks) == 0 {
		return time.Time{}
	}
	return w.Weeks[len(w.Weeks)-1].End()
}

// Index returns the page holding the given date key, or -1.
func (w Window) Index(key string) int {
	for i, week := range w.Weeks {
		for _, d := range week {
			if d.Key == key {
				return i
			}
		}
	}
	return -1
}

// Contains reports whether the date key falls inside the window.
func (w Window) Contains(key string) bool {
	return w.Index(key) >= 0
}

// TodayIndex returns the page holding Today.
func (w Window) TodayIndex() int {
	return w.Index(DateKey(w.Today))
}

type gridOptions struct {
	weekStart time.Weekday
}

// GridOption customizes BuildWindow.
type GridOption func(*gridOptions)

// WithGridWeekStart sets the first weekday of every page. Default Monday.
func WithGridWeekStart(wd time.Weekday) GridOption {
	return func(o *gridOptions) {
		o.weekStart = wd
	}
}

// DateKey formats t as the canonical join key between days and items.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// NewDay builds the descriptor for the calendar day containing t.
func NewDay(t time.Time) Day {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return Day{
		Date:   d,
		Key:    DateKey(d),
		Short:  d.Format(constants.ShortDayFormat),
		Number: d.Format(constants.DayNumberFormat),
	}
}

// BuildWindow enumerates every week from today-pastWeeks to today+futureWeeks,
// inclusive of the partial boundary weeks. The result always has
// pastWeeks+futureWeeks+1 pages. It is pure: identical inputs give identical output.
func BuildWindow(pastWeeks, futureWeeks int, today time.Time, opts ...GridOption) (Window, error) {
	if pastWeeks < 0 {
		return Window{}, fmt.Errorf("%w: pastWeeks must be non-negative, got %d", ErrInvalidArgument, pastWeeks)
	}
	if futureWeeks < 0 {
		return Window{}, fmt.Errorf("%w: futureWeeks must be non-negative, got %d", ErrInvalidArgument, futureWeeks)
	}

	o := gridOptions{weekStart: constants.DefaultWeekStart}
	for _, opt := range opts {
		opt(&o)
	}
	if o.weekStart < time.Sunday || o.weekStart > time.Saturday {
		return Window{}, fmt.Errorf("%w: week start %d out of range", ErrInvalidArgument, o.weekStart)
	}

	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	first := addDays(today, -constants.DaysPerWeek*pastWeeks)
	last := addDays(today, constants.DaysPerWeek*futureWeeks)

	weeks := make([]Week, 0, pastWeeks+futureWeeks+1)
	for start := startOfWeek(first, o.weekStart); !start.After(last); start = addDays(start, constants.DaysPerWeek) {
		var week Week
		for i := range week {
			week[i] = NewDay(addDays(start, i))
		}
		weeks = append(weeks, week)
	}

	return Window{
		Today:       today,
		PastWeeks:   pastWeeks,
		FutureWeeks: futureWeeks,
		WeekStart:   o.weekStart,
		Weeks:       weeks,
	}, nil
}

// startOfWeek walks t back to the given weekday.
func startOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	back := (int(t.Weekday()) - int(weekStart) + constants.DaysPerWeek) % constants.DaysPerWeek
	return addDays(t, -back)
}

// addDays moves by calendar days, keeping midnight across DST changes.
func addDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}
