package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/agenda/internal/models"
	_ "modernc.org/sqlite"
)

const sqliteItemsQuery = `SELECT id, title, description, date FROM items WHERE date >= ? AND date < ? ORDER BY date, title`

type SQLiteStore struct {
	path string
	loc  *time.Location
	db   *sql.DB
}

func NewSQLiteStore(path string, loc *time.Location) *SQLiteStore {
	return &SQLiteStore{
		path: path,
		loc:  loc,
	}
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("database %s does not exist", s.path)
	}

	db, err := sql.Open("sqlite", s.dsn())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

// dsn opens the file read-only; the agenda never writes items.
func (s *SQLiteStore) dsn() string {
	return "file:" + s.path + "?mode=ro"
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) Items(ctx context.Context, start, end time.Time) ([]models.Item, error) {
	if s.db == nil {
		return nil, ErrNotLoaded
	}
	from, to := dayRange(start.In(s.loc), end.In(s.loc))
	items, err := queryItems(ctx, s.db, sqliteItemsQuery, s.path, from, to, s.loc)
	if err != nil {
		return nil, err
	}
	return filterRange(items, from, to), nil
}

func (s *SQLiteStore) Describe() string { return "sqlite: " + s.path }
