// Package ics reads iCalendar data and expands its events into agenda items.
package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/julianstephens/agenda/internal/logger"
)

// ErrEmpty is returned for an empty payload.
var ErrEmpty = errors.New("empty ICS body")

// Event is a VEVENT reduced to what the agenda shows. Recurrences are kept
// unexpanded; see Expand.
type Event struct {
	UID         string
	Summary     string
	Description string

	Start  time.Time
	End    time.Time
	AllDay bool

	RRule      string
	ExDates    []time.Time
	Recurrence *time.Time // RECURRENCE-ID of an overriding instance
	Cancelled  bool
}

// IsOverride reports whether the event replaces one instance of a recurring event.
func (e Event) IsOverride() bool { return e.Recurrence != nil }

// Parse reads every VEVENT in body. Events that cannot be read are logged and
// skipped. Floating times are read in loc.
func Parse(body []byte, loc *time.Location) ([]Event, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmpty
	}
	if loc == nil {
		loc = time.Local
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	events := make([]Event, 0)
	for _, ve := range cal.Events() {
		ev, err := parseEvent(ve, loc)
		if err != nil {
			logger.Warn("skipping event", "error", err)
			continue
		}
		events = append(events, ev)
	}
	logger.Debug("ics parsed", "events", len(events))
	return events, nil
}

func parseEvent(ve *ical.VEvent, loc *time.Location) (Event, error) {
	var out Event

	out.UID = strings.TrimSpace(propertyValue(ve.GetProperty(ical.ComponentPropertyUniqueId)))
	if out.UID == "" {
		return out, errors.New("missing UID")
	}
	out.Summary = sanitize(propertyValue(ve.GetProperty(ical.ComponentPropertySummary)))
	out.Description = strings.TrimSpace(propertyValue(ve.GetProperty(ical.ComponentPropertyDescription)))
	out.Cancelled = strings.EqualFold(strings.TrimSpace(propertyValue(ve.GetProperty(ical.ComponentPropertyStatus))), "CANCELLED")

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, fmt.Errorf("event %s: missing DTSTART", out.UID)
	}
	out.AllDay = isAllDay(dtStart)

	start, err := parseTimeValue(dtStart.Value, dtStart.ICalParameters, loc)
	if err != nil {
		// Fall back to the library for forms we do not handle.
		if start, err = ve.GetStartAt(); err != nil {
			return out, fmt.Errorf("event %s: invalid DTSTART: %w", out.UID, err)
		}
	}
	out.Start = start

	if dtEnd := ve.GetProperty(ical.ComponentPropertyDtEnd); dtEnd != nil {
		if end, err := parseTimeValue(dtEnd.Value, dtEnd.ICalParameters, loc); err == nil {
			out.End = end
		}
	}
	if !out.End.After(out.Start) {
		if out.AllDay {
			out.End = out.Start.AddDate(0, 0, 1)
		} else {
			out.End = out.Start
		}
	}

	out.RRule = strings.TrimSpace(propertyValue(ve.GetProperty(ical.ComponentPropertyRrule)))
	out.ExDates = collectTimes(ve.GetProperties(ical.ComponentPropertyExdate), loc)

	if rid := ve.GetProperty(ical.ComponentPropertyRecurrenceId); rid != nil {
		if t, err := parseTimeValue(rid.Value, rid.ICalParameters, loc); err == nil {
			out.Recurrence = &t
		}
	}

	return out, nil
}

func collectTimes(props []*ical.IANAProperty, loc *time.Location) []time.Time {
	var out []time.Time
	for _, p := range props {
		if p == nil {
			continue
		}
		for _, v := range strings.Split(p.Value, ",") {
			if t, err := parseTimeValue(v, p.ICalParameters, loc); err == nil {
				out = append(out, t)
			}
		}
	}
	return out
}

var timeLayouts = []string{
	"20060102T150405Z",
	"20060102T1504Z",
	"20060102T150405",
	"20060102T1504",
	"20060102",
}

// parseTimeValue handles UTC, TZID-qualified, floating and date-only values.
func parseTimeValue(value string, params map[string][]string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty time value")
	}

	if tzids, ok := params[string(ical.ParameterTzid)]; ok && len(tzids) > 0 {
		if l, err := time.LoadLocation(strings.TrimSpace(tzids[0])); err == nil {
			loc = l
		}
	}

	for _, layout := range timeLayouts {
		var (
			t   time.Time
			err error
		)
		if strings.HasSuffix(layout, "Z") {
			t, err = time.Parse(layout, value)
		} else {
			t, err = time.ParseInLocation(layout, value, loc)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse time value %q", value)
}

func isAllDay(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters[string(ical.ParameterValue)]; ok {
		for _, v := range vs {
			if strings.EqualFold(strings.TrimSpace(v), "DATE") {
				return true
			}
		}
	}
	return len(strings.TrimSpace(p.Value)) == 8
}

func propertyValue(p *ical.IANAProperty) string {
	if p == nil {
		return ""
	}
	return p.Value
}

func sanitize(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
