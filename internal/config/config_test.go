package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Load() must not create the config file")
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "past_weeks: 0\nfuture_weeks: 4\nweek_start: Sunday\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PastWeeks != 0 || cfg.FutureWeeks != 4 {
		t.Errorf("weeks = %d/%d, want 0/4", cfg.PastWeeks, cfg.FutureWeeks)
	}
	if cfg.WeekStart != "sunday" || cfg.Weekday() != time.Sunday {
		t.Errorf("week start = %q (%v)", cfg.WeekStart, cfg.Weekday())
	}
	if cfg.Source != "sample" || cfg.Timezone != "Local" {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("past_weeks: [oops"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := &Config{
		PastWeeks:   2,
		FutureWeeks: 3,
		WeekStart:   "sunday",
		Timezone:    "UTC",
		Source:      "~/agenda/items.ics",
		Refresh:     "*/15 * * * *",
		SampleSeed:  99,
	}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("permissions = %o, want 600", perm)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *got != *want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the config file, found %d entries", len(entries))
	}
}

func TestSaveNil(t *testing.T) {
	if err := Save(filepath.Join(t.TempDir(), "c.yaml"), nil); err == nil {
		t.Error("Save(nil) should fail")
	}
	if err := Save("", Default()); err == nil {
		t.Error("Save with empty path should fail")
	}
}

func TestNormalize(t *testing.T) {
	cfg := &Config{WeekStart: "  MONDAY ", Refresh: " @hourly "}
	cfg.Normalize()

	if cfg.WeekStart != "monday" {
		t.Errorf("WeekStart = %q", cfg.WeekStart)
	}
	if cfg.Timezone != "Local" || cfg.Source != "sample" {
		t.Errorf("defaults not filled: %+v", cfg)
	}
	if cfg.Refresh != "@hourly" {
		t.Errorf("Refresh = %q", cfg.Refresh)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero weeks", mutate: func(c *Config) { c.PastWeeks, c.FutureWeeks = 0, 0 }},
		{name: "negative past", mutate: func(c *Config) { c.PastWeeks = -1 }, wantErr: true},
		{name: "negative future", mutate: func(c *Config) { c.FutureWeeks = -2 }, wantErr: true},
		{name: "sunday", mutate: func(c *Config) { c.WeekStart = "sunday" }},
		{name: "numeric weekday", mutate: func(c *Config) { c.WeekStart = "6" }},
		{name: "bad weekday", mutate: func(c *Config) { c.WeekStart = "someday" }, wantErr: true},
		{name: "utc", mutate: func(c *Config) { c.Timezone = "UTC" }},
		{name: "bad timezone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, wantErr: true},
		{name: "cron spec", mutate: func(c *Config) { c.Refresh = "*/5 * * * *" }},
		{name: "cron descriptor", mutate: func(c *Config) { c.Refresh = "@every 10m" }},
		{name: "bad cron", mutate: func(c *Config) { c.Refresh = "every so often" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("Validate() error = %v, want ErrInvalid", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestSchedule(t *testing.T) {
	cfg := Default()
	sched, err := cfg.Schedule()
	if err != nil || sched != nil {
		t.Fatalf("Schedule() with empty refresh = %v, %v; want nil, nil", sched, err)
	}

	cfg.Refresh = "0 * * * *"
	sched, err = cfg.Schedule()
	if err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	from := time.Date(2023, 1, 25, 10, 15, 0, 0, time.UTC)
	if next := sched.Next(from); !next.Equal(time.Date(2023, 1, 25, 11, 0, 0, 0, time.UTC)) {
		t.Errorf("Next(%v) = %v", from, next)
	}
}
