package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/agenda/internal/cli"
	"github.com/julianstephens/agenda/internal/config"
	"github.com/julianstephens/agenda/internal/constants"
	apperrors "github.com/julianstephens/agenda/internal/errors"
	"github.com/julianstephens/agenda/internal/logger"
	"github.com/julianstephens/agenda/internal/utils"
)

var CLI struct {
	Version     kong.VersionFlag
	Config      string `help:"Config file path." type:"path" default:"${config_path}"`
	Source      string `help:"Item source: sample, sample:<seed>, keyring, a postgres:// URL, or a .json, .ics or .db file." env:"AGENDA_SOURCE"`
	PastWeeks   int    `help:"Weeks shown before the current one." default:"-1"`
	FutureWeeks int    `help:"Weeks shown after the current one." default:"-1"`
	WeekStart   string `help:"First day of each week, e.g. monday or sunday."`
	Debug       bool   `help:"Enable debug logging."`

	Tui     cli.TuiCmd    `cmd:"" help:"Launch the interactive agenda." default:"1"`
	Week    cli.WeekCmd   `cmd:"" help:"Print the week strip for the window."`
	List    cli.ListCmd   `cmd:"" help:"List items day by day for the window."`
	Doctor  cli.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Init    cli.InitCmd   `cmd:"" help:"Write the config file."`
	Keyring struct {
		Set    cli.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Delete cli.KeyringDeleteCmd `cmd:"" help:"Remove the connection string from the OS keyring."`
		Status cli.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage the PostgreSQL connection string."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Week strip and day-by-day agenda, scrolled in lockstep"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	configPath, err := utils.ExpandPath(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(configPath),
		Quiet:     ctx.Command() == "tui",
	}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		apperrors.Fatal(err)
	}
	applyFlags(cfg)

	// only commands that read items need a valid config
	if !strings.HasPrefix(ctx.Command(), "keyring") && ctx.Command() != "init" && ctx.Command() != "doctor" {
		if err := cfg.Validate(); err != nil {
			apperrors.Fatal(err)
		}
	}

	appCtx := &cli.Context{
		Config:     cfg,
		ConfigPath: configPath,
	}

	err = ctx.Run(appCtx)
	if cerr := appCtx.Close(); cerr != nil {
		logger.Warn("failed to close source", "error", cerr)
	}
	apperrors.Fatal(err)
}

// applyFlags lays command-line overrides over the loaded config.
func applyFlags(cfg *config.Config) {
	if CLI.Source != "" {
		cfg.Source = CLI.Source
	}
	if CLI.PastWeeks >= 0 {
		cfg.PastWeeks = CLI.PastWeeks
	}
	if CLI.FutureWeeks >= 0 {
		cfg.FutureWeeks = CLI.FutureWeeks
	}
	if CLI.WeekStart != "" {
		cfg.WeekStart = CLI.WeekStart
	}
	cfg.Normalize()
}
