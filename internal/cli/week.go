package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/julianstephens/agenda/internal/constants"
)

type WeekCmd struct {
	Current bool `help:"Show only the week containing today."`
}

func (c *WeekCmd) Run(ctx *Context) error {
	container, err := ctx.loadAgenda()
	if err != nil {
		return err
	}

	pages := container.CalendarPages()
	if c.Current {
		today := container.TodayPage()
		pages = pages[today : today+1]
	}

	bold := color.New(color.Bold)
	muted := color.New(color.Faint)
	highlighted := color.New(color.Bold, color.FgHiWhite)
	today := color.New(color.Bold, color.FgHiMagenta, color.Underline)

	tbl := uitable.New()
	tbl.Separator = "  "

	header := []interface{}{bold.Sprint("Week")}
	for _, d := range pages[0] {
		header = append(header, bold.Sprint(d.Short))
	}
	header = append(header, bold.Sprint("Items"))
	tbl.AddRow(header...)

	for _, week := range pages {
		row := []interface{}{week[0].Date.Format("Jan 02")}
		count := 0
		for _, d := range week {
			style := muted
			if d.Highlighted {
				style = highlighted
			}
			if d.IsToday {
				style = today
			}
			row = append(row, style.Sprint(d.Number))
			count += len(container.Items(d.Key))
		}
		row = append(row, count)
		tbl.AddRow(row...)
	}
	for i := 1; i <= constants.DaysPerWeek+1; i++ {
		tbl.RightAlign(i)
	}

	_, _ = fmt.Fprintln(ctx.out(), tbl)
	return nil
}

