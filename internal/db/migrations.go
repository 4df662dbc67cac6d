package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS items (
			id            TEXT PRIMARY KEY,
			day           DATE NOT NULL,
			start_mins    INTEGER NOT NULL CHECK(start_mins >= 0 AND start_mins < 1440),
			duration_mins INTEGER NOT NULL CHECK(duration_mins > 0),
			caption       TEXT,
			created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_items_day ON items(day);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating items table: %w", err)
	}

	return nil
}
