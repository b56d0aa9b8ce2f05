package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/agenda/internal/constants"
	"github.com/julianstephens/agenda/internal/logger"
	"github.com/julianstephens/agenda/internal/models"
	"github.com/julianstephens/agenda/internal/utils"
)

// Both SQL providers read the same table:
//
//	CREATE TABLE items (
//	    id          TEXT PRIMARY KEY,
//	    title       TEXT NOT NULL,
//	    description TEXT,
//	    date        TEXT NOT NULL -- YYYY-MM-DD or RFC3339
//	);
//
// Date keys and RFC3339 timestamps sort lexicographically, so a text range on
// date keys selects whole days.

// queryItems runs query with the range bounds as its two parameters.
func queryItems(ctx context.Context, db *sql.DB, query, source string, from, to time.Time, loc *time.Location) ([]models.Item, error) {
	rows, err := db.QueryContext(ctx, query, from.Format(constants.DateFormat), to.Format(constants.DateFormat))
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		var (
			item        models.Item
			description sql.NullString
			date        string
		)
		if err := rows.Scan(&item.ID, &item.Title, &description, &date); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		t, err := utils.ParseFlexibleDate(date, loc)
		if err != nil {
			logger.Warn("skipping item with bad date", "source", source, "id", item.ID, "date", date)
			continue
		}
		item.Description = description.String
		item.Date = t
		item.AllDay = len(date) == len(constants.DateFormat)
		item.Source = source
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	return items, nil
}
