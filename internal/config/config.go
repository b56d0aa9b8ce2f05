package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/agenda/internal/constants"
	"github.com/julianstephens/agenda/internal/utils"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config is the on-disk agenda configuration.
type Config struct {
	// PastWeeks and FutureWeeks size the week window around today.
	PastWeeks   int `yaml:"past_weeks"`
	FutureWeeks int `yaml:"future_weeks"`

	// WeekStart is the first weekday of every page, e.g. "monday" or "sunday".
	WeekStart string `yaml:"week_start"`

	// Timezone is an IANA name or "Local".
	Timezone string `yaml:"timezone"`

	// Source selects the item provider; see storage.Open.
	Source string `yaml:"source"`

	// Refresh is a cron spec ("*/15 * * * *") for reloading the source while
	// the TUI runs. Empty disables reloads.
	Refresh string `yaml:"refresh,omitempty"`

	// SampleSeed fixes the sample source's items. Zero picks a seed per run.
	SampleSeed int64 `yaml:"sample_seed,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PastWeeks:   constants.DefaultPastWeeks,
		FutureWeeks: constants.DefaultFutureWeeks,
		WeekStart:   strings.ToLower(constants.DefaultWeekStart.String()),
		Timezone:    constants.DefaultTimezone,
		Source:      constants.SourceSample,
	}
}

// Normalize fills empty string fields with defaults and canonicalizes case.
func (c *Config) Normalize() {
	c.WeekStart = strings.ToLower(strings.TrimSpace(c.WeekStart))
	if c.WeekStart == "" {
		c.WeekStart = strings.ToLower(constants.DefaultWeekStart.String())
	}
	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.Timezone == "" {
		c.Timezone = constants.DefaultTimezone
	}
	c.Source = strings.TrimSpace(c.Source)
	if c.Source == "" {
		c.Source = constants.SourceSample
	}
	c.Refresh = strings.TrimSpace(c.Refresh)
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.PastWeeks < 0 {
		return fmt.Errorf("%w: past_weeks must be non-negative, got %d", ErrInvalid, c.PastWeeks)
	}
	if c.FutureWeeks < 0 {
		return fmt.Errorf("%w: future_weeks must be non-negative, got %d", ErrInvalid, c.FutureWeeks)
	}
	if _, err := utils.ParseWeekday(c.WeekStart); err != nil {
		return fmt.Errorf("%w: week_start: %v", ErrInvalid, err)
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalid, c.Timezone)
	}
	if _, err := c.Schedule(); err != nil {
		return fmt.Errorf("%w: refresh: %v", ErrInvalid, err)
	}
	return nil
}

// Weekday returns the parsed week start, falling back to the default.
func (c *Config) Weekday() time.Weekday {
	wd, err := utils.ParseWeekday(c.WeekStart)
	if err != nil {
		return constants.DefaultWeekStart
	}
	return wd
}

// Location returns the configured timezone, falling back to time.Local.
func (c *Config) Location() *time.Location {
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Schedule parses Refresh. It returns nil, nil when reloads are disabled.
func (c *Config) Schedule() (cron.Schedule, error) {
	if c.Refresh == "" {
		return nil, nil
	}
	return cron.ParseStandard(c.Refresh)
}

// Load reads the YAML file at path over the defaults. A missing file yields
// the defaults and is not created; use Save for that.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+constants.AppName+"-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
