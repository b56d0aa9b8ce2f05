package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/julianstephens/agenda/internal/agenda"
	"github.com/julianstephens/agenda/internal/config"
	"github.com/julianstephens/agenda/internal/models"
	"github.com/julianstephens/agenda/internal/storage"
)

const queryTimeout = 30 * time.Second

type Context struct {
	Config     *config.Config
	ConfigPath string

	// Store is opened from Config.Source on first use when nil.
	Store storage.Provider

	// Today overrides the current date. Zero means today in the configured timezone.
	Today time.Time

	// Out receives command output. Nil means color.Output.
	Out io.Writer
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return color.Output
	}
	return c.Out
}

func (c *Context) today() time.Time {
	if !c.Today.IsZero() {
		return c.Today
	}
	return time.Now().In(c.Config.Location())
}

// OpenStore opens and loads the configured source once.
func (c *Context) OpenStore() (storage.Provider, error) {
	if c.Store != nil {
		return c.Store, nil
	}
	store, err := storage.Open(c.Config.Source, storage.Options{
		Location:   c.Config.Location(),
		SampleSeed: c.Config.SampleSeed,
	})
	if err != nil {
		return nil, err
	}
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", store.Describe(), err)
	}
	c.Store = store
	return store, nil
}

// Close releases the store if one was opened.
func (c *Context) Close() error {
	if c.Store == nil {
		return nil
	}
	return c.Store.Close()
}

// loadAgenda builds the configured window and fills it from the store.
func (c *Context) loadAgenda() (*agenda.Container[models.Item, models.Item], error) {
	store, err := c.OpenStore()
	if err != nil {
		return nil, err
	}

	opts := []agenda.Option{
		agenda.WithWindow(c.Config.PastWeeks, c.Config.FutureWeeks),
		agenda.WithToday(c.today()),
		agenda.WithWeekStart(c.Config.Weekday()),
	}
	container, err := agenda.New(models.ItemsByDate{}, models.Item.Key, identity, opts...)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	window := container.Window()
	items, err := store.Items(ctx, window.Start(), window.End())
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	container.SetItems(models.GroupByDate(items, c.Config.Location()))
	return container, nil
}

func identity(item models.Item) models.Item { return item }
