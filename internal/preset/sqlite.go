package preset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS presets (
    name             TEXT PRIMARY KEY,
    display_category TEXT NOT NULL DEFAULT '',
    document         TEXT NOT NULL,
    updated_at       TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteStore keeps presets in a SQLite database, one row per name.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates or opens the preset database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create preset database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL mode for safe concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Put implements Store.
func (s *SQLiteStore) Put(ctx context.Context, p Preset) error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	data, err := encode(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO presets (name, display_category, document, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			display_category = excluded.display_category,
			document = excluded.document,
			updated_at = CURRENT_TIMESTAMP
	`, p.Name, p.DisplayCategory, string(data))
	if err != nil {
		return fmt.Errorf("failed to write preset %q: %w", p.Name, err)
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, name string) (Preset, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, "SELECT document FROM presets WHERE name = ?", name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, ErrNotFound
	}
	if err != nil {
		return Preset{}, fmt.Errorf("failed to read preset %q: %w", name, err)
	}
	return decode(name, []byte(doc))
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM presets ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM presets WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete preset %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
