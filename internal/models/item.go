package models

import (
	"sort"
	"time"

	"github.com/julianstephens/agenda/internal/agenda"
)

// Item is one agenda entry as loaded from a source.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	AllDay      bool      `json:"all_day,omitempty"`
	Source      string    `json:"-"`
}

// Key returns the item's stable identity.
func (i Item) Key() string { return i.ID }

// ItemsByDate maps a date key (YYYY-MM-DD) to the items on that day.
type ItemsByDate map[string][]Item

// GroupByDate buckets items by their calendar day in loc. Items within a day
// are ordered by time, all-day items first, then by title.
func GroupByDate(items []Item, loc *time.Location) ItemsByDate {
	if loc == nil {
		loc = time.Local
	}
	out := make(ItemsByDate)
	for _, item := range items {
		key := agenda.DateKey(item.Date.In(loc))
		out[key] = append(out[key], item)
	}
	for _, day := range out {
		sort.SliceStable(day, func(a, b int) bool {
			if day[a].AllDay != day[b].AllDay {
				return day[a].AllDay
			}
			if !day[a].Date.Equal(day[b].Date) {
				return day[a].Date.Before(day[b].Date)
			}
			return day[a].Title < day[b].Title
		})
	}
	return out
}

// Count returns the total number of items across all days.
func (m ItemsByDate) Count() int {
	n := 0
	for _, day := range m {
		n += len(day)
	}
	return n
}
