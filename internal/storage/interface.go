package storage

import (
	"context"
	"errors"
	"time"

	"github.com/julianstephens/agenda/internal/models"
)

var (
	// ErrUnknownSource is returned by Open for an unrecognized source string.
	ErrUnknownSource = errors.New("unknown item source")
	// ErrNotLoaded is returned when Items is called before Load.
	ErrNotLoaded = errors.New("source not loaded")
)

// Provider is a read-only source of agenda items.
type Provider interface {
	// Lifecycle
	Load() error
	Close() error

	// Items returns every item dated from the start of start's day through
	// the end of end's day.
	Items(ctx context.Context, start, end time.Time) ([]models.Item, error)

	// Describe names the source for status lines and diagnostics.
	Describe() string
}

// dayRange widens [start, end] to [midnight of start, midnight after end).
func dayRange(start, end time.Time) (time.Time, time.Time) {
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	to := time.Date(end.Year(), end.Month(), end.Day()+1, 0, 0, 0, 0, end.Location())
	return from, to
}

// filterRange keeps the items whose date falls in [from, to).
func filterRange(items []models.Item, from, to time.Time) []models.Item {
	out := make([]models.Item, 0, len(items))
	for _, item := range items {
		if !item.Date.Before(from) && item.Date.Before(to) {
			out = append(out, item)
		}
	}
	return out
}
