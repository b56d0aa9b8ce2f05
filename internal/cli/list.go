package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/julianstephens/agenda/internal/models"
)

type ListCmd struct {
	ShowIDs bool `help:"Show item IDs." name:"show-ids"`
	Empty   bool `help:"Include days without items."`
}

func (c *ListCmd) Run(ctx *Context) error {
	container, err := ctx.loadAgenda()
	if err != nil {
		return err
	}

	out := ctx.out()
	bold := color.New(color.Bold)
	todayStyle := color.New(color.Bold, color.FgHiMagenta)
	faint := color.New(color.Faint)

	printed := 0
	for _, week := range container.AgendaPages() {
		for _, day := range week {
			if len(day.Entries) == 0 && !c.Empty {
				continue
			}

			heading := bold
			if day.IsToday {
				heading = todayStyle
			}
			_, _ = heading.Fprintf(out, "%s %s\n", day.Short, day.Date.Format("2006-01-02"))

			if len(day.Entries) == 0 {
				_, _ = faint.Fprintln(out, "  No items")
				continue
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = 60
			tbl.Wrap = true
			for _, e := range day.Entries {
				tbl.AddRow(c.row(e.Output)...)
				printed++
			}
			_, _ = fmt.Fprintln(out, tbl)
		}
	}

	if printed == 0 {
		_, _ = fmt.Fprintln(out, "No items found")
	}
	return nil
}

func (c *ListCmd) row(item models.Item) []interface{} {
	when := "all day"
	if !item.AllDay {
		when = item.Date.Format("15:04")
	}
	row := []interface{}{"  " + when, item.Title}
	if c.ShowIDs {
		row = append(row, fmt.Sprintf("(ID: %s)", item.ID))
	}
	return row
}
