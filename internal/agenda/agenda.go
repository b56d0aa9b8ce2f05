package agenda

import (
	"fmt"
	"time"

	"github.com/julianstephens/agenda/internal/constants"
	"github.com/julianstephens/agenda/internal/logger"
)

// CalendarDay is a day as shown in the week strip.
type CalendarDay struct {
	Day
	Highlighted bool // the item mapping has an entry for this day
	IsToday     bool
}

// CalendarWeek is one page of the week strip.
type CalendarWeek [constants.DaysPerWeek]CalendarDay

// Entry is one rendered item with its stable identity.
type Entry[R any] struct {
	Key    string
	Output R
}

// AgendaDay is a day followed by its rendered items.
type AgendaDay[R any] struct {
	Day
	IsToday bool
	Entries []Entry[R]
}

// AgendaWeek is one page of the agenda list.
type AgendaWeek[R any] [constants.DaysPerWeek]AgendaDay[R]

type options struct {
	pastWeeks   int
	futureWeeks int
	today       time.Time
	weekStart   time.Weekday
	calendar    Controller
	agenda      Controller
}

// Option configures a Container.
type Option func(*options)

// WithWindow sets how many weeks before and after today are shown. Default 1 and 1.
func WithWindow(pastWeeks, futureWeeks int) Option {
	return func(o *options) {
		o.pastWeeks = pastWeeks
		o.futureWeeks = futureWeeks
	}
}

// WithToday fixes "today" for the container's lifetime. Default time.Now().
func WithToday(today time.Time) Option {
	return func(o *options) {
		o.today = today
	}
}

// WithWeekStart sets the first weekday of each page. Default Monday.
func WithWeekStart(wd time.Weekday) Option {
	return func(o *options) {
		o.weekStart = wd
	}
}

// WithControllers attaches the pane controllers the synchronizer drives.
func WithControllers(calendar, agenda Controller) Option {
	return func(o *options) {
		o.calendar = calendar
		o.agenda = agenda
	}
}

// Container joins the week window with caller items and routes pane events to
// its Synchronizer. T is the caller's item type and R the rendered form.
type Container[T, R any] struct {
	window Window
	items  map[string][]T
	key    func(T) string
	render func(T) R
	sync   *Synchronizer
}

// New builds the window and a synchronizer over the given controllers.
// The items map is read, never mutated.
func New[T, R any](items map[string][]T, keyExtractor func(T) string, renderItem func(T) R, opts ...Option) (*Container[T, R], error) {
	if keyExtractor == nil {
		return nil, fmt.Errorf("%w: keyExtractor is required", ErrInvalidArgument)
	}
	if renderItem == nil {
		return nil, fmt.Errorf("%w: renderItem is required", ErrInvalidArgument)
	}

	o := options{
		pastWeeks:   constants.DefaultPastWeeks,
		futureWeeks: constants.DefaultFutureWeeks,
		weekStart:   constants.DefaultWeekStart,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.today.IsZero() {
		o.today = time.Now()
	}

	window, err := BuildWindow(o.pastWeeks, o.futureWeeks, o.today, WithGridWeekStart(o.weekStart))
	if err != nil {
		return nil, err
	}

	return &Container[T, R]{
		window: window,
		items:  items,
		key:    keyExtractor,
		render: renderItem,
		sync:   NewSynchronizer(o.calendar, o.agenda),
	}, nil
}

// Window returns the current week window.
func (c *Container[T, R]) Window() Window { return c.window }

// Sync returns the synchronizer owned by the container.
func (c *Container[T, R]) Sync() *Synchronizer { return c.sync }

// PageCount returns the number of week pages.
func (c *Container[T, R]) PageCount() int { return c.window.Len() }

// TodayPage returns the page holding today.
func (c *Container[T, R]) TodayPage() int { return c.window.TodayIndex() }

// SetWindow rebuilds the grid when either count differs from the current one.
// Today and the week start are kept. On error the previous window stays.
func (c *Container[T, R]) SetWindow(pastWeeks, futureWeeks int) (bool, error) {
	if pastWeeks == c.window.PastWeeks && futureWeeks == c.window.FutureWeeks {
		return false, nil
	}
	window, err := BuildWindow(pastWeeks, futureWeeks, c.window.Today, WithGridWeekStart(c.window.WeekStart))
	if err != nil {
		return false, err
	}
	logger.Debug("window rebuilt", "past", pastWeeks, "future", futureWeeks, "pages", window.Len())
	c.window = window
	return true, nil
}

// SetItems replaces the item mapping.
func (c *Container[T, R]) SetItems(items map[string][]T) {
	c.items = items
}

// Items returns the item mapping for a date key.
func (c *Container[T, R]) Items(key string) []T {
	return c.items[key]
}

// Highlighted reports whether the mapping has an entry for the date key.
func (c *Container[T, R]) Highlighted(key string) bool {
	_, ok := c.items[key]
	return ok
}

// CalendarPage projects page i of the window for the week strip.
func (c *Container[T, R]) CalendarPage(i int) CalendarWeek {
	var out CalendarWeek
	if i < 0 || i >= c.window.Len() {
		return out
	}
	todayKey := DateKey(c.window.Today)
	for j, d := range c.window.Weeks[i] {
		out[j] = CalendarDay{
			Day:         d,
			Highlighted: c.Highlighted(d.Key),
			IsToday:     d.Key == todayKey,
		}
	}
	return out
}

// CalendarPages projects every page for the week strip.
func (c *Container[T, R]) CalendarPages() []CalendarWeek {
	pages := make([]CalendarWeek, c.window.Len())
	for i := range pages {
		pages[i] = c.CalendarPage(i)
	}
	return pages
}

// AgendaPage renders page i of the window with each day's items.
func (c *Container[T, R]) AgendaPage(i int) AgendaWeek[R] {
	var out AgendaWeek[R]
	if i < 0 || i >= c.window.Len() {
		return out
	}
	todayKey := DateKey(c.window.Today)
	for j, d := range c.window.Weeks[i] {
		out[j] = AgendaDay[R]{
			Day:     d,
			IsToday: d.Key == todayKey,
			Entries: c.renderDay(d.Key),
		}
	}
	return out
}

// AgendaPages renders every page of the agenda list.
func (c *Container[T, R]) AgendaPages() []AgendaWeek[R] {
	pages := make([]AgendaWeek[R], c.window.Len())
	for i := range pages {
		pages[i] = c.AgendaPage(i)
	}
	return pages
}

func (c *Container[T, R]) renderDay(key string) []Entry[R] {
	items := c.items[key]
	if len(items) == 0 {
		return nil
	}
	entries := make([]Entry[R], 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		k := c.key(item)
		if _, dup := seen[k]; dup {
			logger.Warn("duplicate item key within day", "date", key, "key", k)
		}
		seen[k] = struct{}{}
		entries = append(entries, Entry[R]{Key: k, Output: c.render(item)})
	}
	return entries
}

// OnDragStart forwards to the synchronizer.
func (c *Container[T, R]) OnDragStart(p Pane) { c.sync.OnDragStart(p) }

// OnDragEnd forwards to the synchronizer.
func (c *Container[T, R]) OnDragEnd(p Pane) { c.sync.OnDragEnd(p) }

// OnScroll forwards to the synchronizer.
func (c *Container[T, R]) OnScroll(p Pane, offset float64) bool { return c.sync.OnScroll(p, offset) }

// OnLayout forwards to the synchronizer.
func (c *Container[T, R]) OnLayout(p Pane, width float64) { c.sync.OnLayout(p, width) }
