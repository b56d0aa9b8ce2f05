package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/agenda/internal/ics"
	"github.com/julianstephens/agenda/internal/models"
)

// ICSStore reads an iCalendar file once and expands recurrences per query.
type ICSStore struct {
	path   string
	loc    *time.Location
	events []ics.Event
}

func NewICSStore(path string, loc *time.Location) *ICSStore {
	return &ICSStore{
		path: path,
		loc:  loc,
	}
}

func (s *ICSStore) Load() error {
	body, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read calendar: %w", err)
	}
	events, err := ics.Parse(body, s.loc)
	if err != nil {
		return fmt.Errorf("%s: %w", s.path, err)
	}
	s.events = events
	return nil
}

func (s *ICSStore) Close() error { return nil }

func (s *ICSStore) Items(ctx context.Context, start, end time.Time) ([]models.Item, error) {
	if s.events == nil {
		return nil, ErrNotLoaded
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	from, to := dayRange(start.In(s.loc), end.In(s.loc))
	return ics.Expand(s.events, ics.ExpandConfig{
		Location:   s.loc,
		RangeStart: from,
		RangeEnd:   to,
		Source:     s.path,
	})
}

func (s *ICSStore) Describe() string { return "ics: " + s.path }
