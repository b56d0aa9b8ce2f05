package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/julianstephens/agenda/internal/backup"
	"github.com/julianstephens/agenda/internal/config"
)

type InitCmd struct {
	Force bool `help:"Overwrite an existing config file."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if ctx.ConfigPath == "" {
		return errors.New("no config path given")
	}

	if _, err := os.Stat(ctx.ConfigPath); err == nil {
		if !c.Force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", ctx.ConfigPath)
		}
		backupPath, err := backup.NewManager(ctx.ConfigPath).CreateBackup()
		if err != nil {
			return fmt.Errorf("failed to back up existing config: %w", err)
		}
		fmt.Fprintf(ctx.out(), "Backed up existing config to: %s\n", backupPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to access existing config: %w", err)
	}

	cfg := ctx.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(ctx.ConfigPath, cfg); err != nil {
		return err
	}

	fmt.Fprintf(ctx.out(), "Initialized agenda config at: %s\n", ctx.ConfigPath)
	return nil
}
