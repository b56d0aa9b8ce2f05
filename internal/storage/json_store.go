package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/agenda/internal/constants"
	"github.com/julianstephens/agenda/internal/models"
	"github.com/julianstephens/agenda/internal/utils"
)

// File is the on-disk layout of a JSON item source.
type File struct {
	Version int        `json:"version"`
	Items   []jsonItem `json:"items"`
}

type jsonItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"` // YYYY-MM-DD or RFC3339
	AllDay      bool   `json:"all_day,omitempty"`
}

type JSONStore struct {
	path  string
	loc   *time.Location
	items []models.Item
}

func NewJSONStore(path string, loc *time.Location) *JSONStore {
	return &JSONStore{
		path: path,
		loc:  loc,
	}
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("item file %s does not exist", s.path)
		}
		return fmt.Errorf("failed to read item file: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse item file: %w", err)
	}

	items := make([]models.Item, 0, len(file.Items))
	for i, raw := range file.Items {
		if raw.ID == "" {
			return fmt.Errorf("item %d: missing id", i)
		}
		date, err := utils.ParseFlexibleDate(raw.Date, s.loc)
		if err != nil {
			return fmt.Errorf("item %s: %w", raw.ID, err)
		}
		items = append(items, models.Item{
			ID:          raw.ID,
			Title:       raw.Title,
			Description: raw.Description,
			Date:        date,
			AllDay:      raw.AllDay || len(raw.Date) == len(constants.DateFormat),
			Source:      s.path,
		})
	}
	s.items = items
	return nil
}

func (s *JSONStore) Close() error { return nil }

func (s *JSONStore) Items(ctx context.Context, start, end time.Time) ([]models.Item, error) {
	if s.items == nil {
		return nil, ErrNotLoaded
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	from, to := dayRange(start.In(s.loc), end.In(s.loc))
	return filterRange(s.items, from, to), nil
}

func (s *JSONStore) Describe() string { return "json: " + s.path }
