// Package sample generates placeholder agenda items for demos and tests.
package sample

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/agenda/internal/constants"
	"github.com/julianstephens/agenda/internal/models"
)

const source = constants.SourceSample

var words = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing elit sed do
eiusmod tempor incididunt ut labore et dolore magna aliqua enim ad minim veniam quis
nostrud exercitation ullamco laboris nisi aliquip ex ea commodo consequat duis aute irure
in reprehenderit voluptate velit esse cillum fugiat nulla pariatur excepteur sint occaecat
cupidatat non proident sunt culpa qui officia deserunt mollit anim id est laborum`)

// Generator produces lorem items. The same seed always yields the same items
// for the same range.
type Generator struct {
	seed int64
}

// New returns a generator. A zero seed picks one from the clock.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{seed: seed}
}

// Seed returns the generator's seed.
func (g *Generator) Seed() int64 { return g.seed }

// Items returns between SampleMinItems and SampleMaxItems items dated within
// [start, end] inclusive of both days.
func (g *Generator) Items(start, end time.Time) ([]models.Item, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("sample range end %s is before start %s", end.Format(constants.DateFormat), start.Format(constants.DateFormat))
	}

	rng := rand.New(rand.NewSource(g.seed))
	n := constants.SampleMinItems + rng.Intn(constants.SampleMaxItems-constants.SampleMinItems+1)

	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	days := int(end.Sub(start).Hours()/24) + 1

	items := make([]models.Item, 0, n)
	for i := 0; i < n; i++ {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, fmt.Errorf("failed to generate id: %w", err)
		}
		day := rng.Intn(days)
		minute := rng.Intn(24 * 60)
		date := time.Date(start.Year(), start.Month(), start.Day()+day, minute/60, minute%60, 0, 0, start.Location())

		items = append(items, models.Item{
			ID:          id.String(),
			Title:       sentence(rng, 3, false),
			Description: paragraph(rng, 5),
			Date:        date,
			Source:      source,
		})
	}
	return items, nil
}

func sentence(rng *rand.Rand, n int, period bool) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[rng.Intn(len(words))]
	}
	s := strings.Join(parts, " ")
	s = strings.ToUpper(s[:1]) + s[1:]
	if period {
		s += "."
	}
	return s
}

func paragraph(rng *rand.Rand, sentences int) string {
	parts := make([]string, sentences)
	for i := range parts {
		parts[i] = sentence(rng, 5+rng.Intn(8), true)
	}
	return strings.Join(parts, " ")
}
