package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/agenda/internal/keyring"
	"github.com/julianstephens/agenda/internal/utils"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	out := ctx.out()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := false
	check := func(name string, err error) {
		if err != nil {
			fmt.Fprintf(out, "❌ %s: FAIL\n", name)
			fmt.Fprintf(out, "   Error: %v\n", err)
			hasError = true
			return
		}
		fmt.Fprintf(out, "✓ %s: OK\n", name)
	}

	configErr := ctx.Config.Validate()
	check("Config", configErr)
	check("Clock/timezone", checkClockTimezone(out, ctx.Config.Timezone))

	if configErr != nil {
		fmt.Fprintln(out, "⊘ Source reachable: SKIPPED (invalid config)")
	} else {
		check("Source reachable", checkSource(ctx))
	}

	if keyring.IsAvailable() {
		fmt.Fprintln(out, "✓ OS keyring: OK")
	} else {
		fmt.Fprintln(out, "⚠ OS keyring: WARNING")
		fmt.Fprintln(out, "   keyring unavailable; use AGENDA_DB_CONNECTION for PostgreSQL")
	}

	fmt.Fprintln(out)
	if hasError {
		fmt.Fprintln(out, "Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}

	fmt.Fprintln(out, "All diagnostics passed!")
	return nil
}

func checkSource(ctx *Context) error {
	store, err := ctx.OpenStore()
	if err != nil {
		return err
	}

	qctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	today := utils.StartOfDay(ctx.today())
	if _, err := store.Items(qctx, today, today); err != nil {
		return fmt.Errorf("failed to query %s: %w", store.Describe(), err)
	}
	return nil
}

func checkClockTimezone(out io.Writer, timezone string) error {
	now, err := utils.NowInTimezone(timezone)
	if err != nil {
		return err
	}

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	if now.Location() == time.UTC {
		fmt.Fprintln(out, "   Note: timezone is UTC")
	}
	return nil
}
