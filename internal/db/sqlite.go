// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/gridcal/internal/schedule"
)

// SQLite implements schedule.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// SaveItem persists a new item. Only literal captions survive the round
// trip; computed captions and opaque payloads are runtime state.
func (s *SQLite) SaveItem(ctx context.Context, item *schedule.Item) error {
	var caption sql.NullString
	if text, ok := item.Caption.Literal(); ok {
		caption = sql.NullString{String: text, Valid: true}
	}

	query := `
		INSERT INTO items (id, day, start_mins, duration_mins, caption, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		item.ID,
		item.Day.Format("2006-01-02"),
		item.StartMins,
		item.DurationMins,
		caption,
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

// ListItems returns all persisted items ordered by day and start time.
func (s *SQLite) ListItems(ctx context.Context) ([]*schedule.Item, error) {
	query := `
		SELECT id, day, start_mins, duration_mins, caption
		FROM items
		ORDER BY day, start_mins
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListItemsByDateRange returns items whose day falls within [start, end].
func (s *SQLite) ListItemsByDateRange(ctx context.Context, start, end time.Time) ([]*schedule.Item, error) {
	query := `
		SELECT id, day, start_mins, duration_mins, caption
		FROM items
		WHERE day >= ? AND day <= ?
		ORDER BY day, start_mins
	`
	rows, err := s.db.QueryContext(ctx, query,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("querying items by range: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// DeleteItem removes an item by ID.
func (s *SQLite) DeleteItem(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// DeleteAll removes every persisted item.
func (s *SQLite) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("purging items: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func scanItems(rows *sql.Rows) ([]*schedule.Item, error) {
	var items []*schedule.Item
	for rows.Next() {
		var (
			item    schedule.Item
			day     time.Time
			caption sql.NullString
		)
		if err := rows.Scan(&item.ID, &day, &item.StartMins, &item.DurationMins, &caption); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Day = day

		if caption.Valid {
			item.Caption = schedule.LiteralCaption(caption.String)
		}

		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
