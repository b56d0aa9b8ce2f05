package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/agenda/internal/constants"
	apperrors "github.com/julianstephens/agenda/internal/errors"
	"github.com/julianstephens/agenda/internal/keyring"
	"github.com/julianstephens/agenda/internal/utils"
)

// Options are shared by every provider.
type Options struct {
	// Location places date-only values and floating times. Nil means time.Local.
	Location *time.Location
	// SampleSeed seeds the sample source unless the source string carries one.
	SampleSeed int64
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// Open picks a provider from a source string:
//
//	sample, sample:<seed>       generated lorem items
//	keyring                     PostgreSQL, connection string from env or OS keyring
//	postgres://, postgresql://  PostgreSQL
//	*.json                      JSON item file
//	*.ics                       iCalendar file
//	*.db, *.sqlite, *.sqlite3   SQLite database, opened read-only
//
// The returned provider is not loaded.
func Open(source string, opts Options) (Provider, error) {
	source = strings.TrimSpace(source)

	switch {
	case source == "" || source == constants.SourceSample:
		return NewSampleStore(opts.SampleSeed, opts.location()), nil
	case strings.HasPrefix(source, constants.SourceSample+":"):
		seed, err := strconv.ParseInt(strings.TrimPrefix(source, constants.SourceSample+":"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid sample seed in %q", ErrUnknownSource, source)
		}
		return NewSampleStore(seed, opts.location()), nil
	case source == constants.SourceKeyring:
		connStr, err := keyring.ResolveConnectionString()
		if err != nil {
			return nil, apperrors.WithHint(
				fmt.Errorf("failed to resolve connection string: %w", err),
				fmt.Sprintf("set %s or run 'agenda keyring set <connection-string>'", constants.EnvDBConnection),
			)
		}
		return newValidatedPostgresStore(connStr, opts)
	case strings.HasPrefix(source, "postgres://") || strings.HasPrefix(source, "postgresql://"):
		return newValidatedPostgresStore(source, opts)
	}

	path, err := utils.ExpandPath(source)
	if err != nil {
		return nil, fmt.Errorf("failed to expand path %q: %w", source, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONStore(path, opts.location()), nil
	case ".ics":
		return NewICSStore(path, opts.location()), nil
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStore(path, opts.location()), nil
	}

	return nil, apperrors.WithHint(
		fmt.Errorf("%w: %q", ErrUnknownSource, source),
		"use sample, keyring, a postgres:// URL, or a .json, .ics or .db file",
	)
}

func newValidatedPostgresStore(connStr string, opts Options) (Provider, error) {
	if _, err := ValidateConnString(connStr); err != nil {
		if errors.Is(err, ErrEmbeddedCredentials) {
			return nil, apperrors.WithHint(err, fmt.Sprintf(
				"store the full connection string with 'agenda keyring set', export %s, or use a .pgpass file",
				constants.EnvDBConnection,
			))
		}
		return nil, err
	}
	return NewPostgresStore(connStr, opts.location()), nil
}
