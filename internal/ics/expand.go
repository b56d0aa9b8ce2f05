package ics

import (
	"errors"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/julianstephens/agenda/internal/constants"
	"github.com/julianstephens/agenda/internal/logger"
	"github.com/julianstephens/agenda/internal/models"
)

// ExpandConfig bounds recurrence expansion.
type ExpandConfig struct {
	// Location is the display timezone. Nil means time.Local.
	Location *time.Location

	// RangeStart is inclusive, RangeEnd exclusive.
	RangeStart time.Time
	RangeEnd   time.Time

	// MaxOccurrences caps a single event. Zero means MaxOccurrencesPerEvent.
	MaxOccurrences int

	// Source tags every produced item.
	Source string
}

// Expand turns events into items whose start falls in the configured range.
// Single events keep their UID as id; recurrence instances get UID@instant.
func Expand(events []Event, cfg ExpandConfig) ([]models.Item, error) {
	if !cfg.RangeEnd.After(cfg.RangeStart) {
		return nil, errors.New("expand: range end must be after range start")
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.MaxOccurrences <= 0 {
		cfg.MaxOccurrences = constants.MaxOccurrencesPerEvent
	}

	bases := make(map[string][]Event)
	overrides := make(map[string][]Event)
	var uids []string
	for _, ev := range events {
		if ev.IsOverride() {
			overrides[ev.UID] = append(overrides[ev.UID], ev)
			continue
		}
		if _, seen := bases[ev.UID]; !seen {
			uids = append(uids, ev.UID)
		}
		bases[ev.UID] = append(bases[ev.UID], ev)
	}
	sort.Strings(uids)

	items := make([]models.Item, 0)
	for _, uid := range uids {
		for _, ev := range bases[uid] {
			if ev.RRule == "" {
				if ev.Cancelled {
					continue
				}
				if inRange(ev.Start, cfg) {
					items = append(items, makeItem(ev, ev.Start, ev.UID, cfg))
				}
				continue
			}
			items = append(items, expandRecurring(ev, overrides[uid], cfg)...)
		}
	}
	return items, nil
}

func expandRecurring(ev Event, overrides []Event, cfg ExpandConfig) []models.Item {
	r, err := rrule.StrToRRule(ev.RRule)
	if err != nil {
		logger.Warn("invalid RRULE", "uid", ev.UID, "rrule", ev.RRule, "error", err)
		return nil
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	// Overrides may move an instance into or out of the range, so search a
	// wider span for the original instants.
	loc := ev.Start.Location()
	span := ev.End.Sub(ev.Start)
	from := cfg.RangeStart.Add(-span).AddDate(0, 0, -1).In(loc)
	to := cfg.RangeEnd.AddDate(0, 0, 1).In(loc)
	instants := set.Between(from, to, true)
	if len(instants) > cfg.MaxOccurrences {
		logger.Warn("recurrence truncated", "uid", ev.UID, "cap", cfg.MaxOccurrences)
		instants = instants[:cfg.MaxOccurrences]
	}

	var out []models.Item
	for _, instant := range instants {
		id := ev.UID + "@" + instant.UTC().Format("20060102T150405Z")
		occ := ev
		start := instant
		if o, ok := findOverride(overrides, instant); ok {
			occ = o
			start = o.Start
		}
		if occ.Cancelled || !inRange(start, cfg) {
			continue
		}
		out = append(out, makeItem(occ, start, id, cfg))
	}
	return out
}

func findOverride(overrides []Event, instant time.Time) (Event, bool) {
	for _, o := range overrides {
		if o.Recurrence != nil && o.Recurrence.Equal(instant) {
			return o, true
		}
	}
	return Event{}, false
}

func inRange(t time.Time, cfg ExpandConfig) bool {
	return !t.Before(cfg.RangeStart) && t.Before(cfg.RangeEnd)
}

func makeItem(ev Event, start time.Time, id string, cfg ExpandConfig) models.Item {
	date := start.In(cfg.Location)
	if ev.AllDay {
		// All-day dates name a calendar day, not an instant.
		date = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, cfg.Location)
	}
	return models.Item{
		ID:          id,
		Title:       ev.Summary,
		Description: ev.Description,
		Date:        date,
		AllDay:      ev.AllDay,
		Source:      cfg.Source,
	}
}
