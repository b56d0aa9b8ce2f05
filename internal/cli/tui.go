package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/agenda/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	store, err := ctx.OpenStore()
	if err != nil {
		return err
	}

	schedule, err := ctx.Config.Schedule()
	if err != nil {
		return err
	}

	model, err := tui.NewModel(store, tui.Settings{
		PastWeeks:   ctx.Config.PastWeeks,
		FutureWeeks: ctx.Config.FutureWeeks,
		WeekStart:   ctx.Config.Weekday(),
		Location:    ctx.Config.Location(),
		Today:       ctx.Today,
		Refresh:     schedule,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
