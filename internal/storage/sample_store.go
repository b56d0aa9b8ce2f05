package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/agenda/internal/models"
	"github.com/julianstephens/agenda/internal/sample"
)

// SampleStore serves generated items for whatever range is requested.
type SampleStore struct {
	gen *sample.Generator
	loc *time.Location
}

func NewSampleStore(seed int64, loc *time.Location) *SampleStore {
	return &SampleStore{
		gen: sample.New(seed),
		loc: loc,
	}
}

func (s *SampleStore) Load() error  { return nil }
func (s *SampleStore) Close() error { return nil }

func (s *SampleStore) Items(ctx context.Context, start, end time.Time) ([]models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	from, to := dayRange(start.In(s.loc), end.In(s.loc))
	return s.gen.Items(from, to.AddDate(0, 0, -1))
}

func (s *SampleStore) Describe() string {
	return fmt.Sprintf("sample (seed %d)", s.gen.Seed())
}
