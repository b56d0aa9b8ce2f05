package constants

import "time"

const (
	AppName            = "agenda"
	Version            = "v0.1.0"
	DefaultConfigPath  = "~/.config/agenda/config.yaml"
	DefaultKeyringUser = "database-connection"

	// DateFormat is the canonical date-key layout (YYYY-MM-DD). Items are joined to
	// calendar days by this exact string.
	DateFormat = "2006-01-02"

	// ShortDayFormat and DayNumberFormat render a day descriptor's labels.
	ShortDayFormat  = "Mon"
	DayNumberFormat = "02"

	DaysPerWeek = 7

	// Window defaults
	DefaultPastWeeks   = 1
	DefaultFutureWeeks = 1
	DefaultWeekStart   = time.Monday
	DefaultTimezone    = "Local"

	// Item sources
	SourceSample    = "sample"
	SourceKeyring   = "keyring"
	EnvSource       = "AGENDA_SOURCE"
	EnvDBConnection = "AGENDA_DB_CONNECTION"
	EnvTestPostgres = "AGENDA_TEST_POSTGRES"

	// Sample data
	SampleMinItems = 30
	SampleMaxItems = 40

	// MaxOccurrencesPerEvent caps recurrence expansion of a single ICS event.
	MaxOccurrencesPerEvent = 5000

	// TUI animation
	SnapFrames        = 6
	SnapFrameInterval = 16 * time.Millisecond
)
