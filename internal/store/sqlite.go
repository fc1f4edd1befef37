package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/justyntemme/launchgrid/internal/debug"
	"github.com/justyntemme/launchgrid/internal/model"
)

// SQLiteStore keeps the layout in a SQLite database, one row per slot.
type SQLiteStore struct {
	conn *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, err
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS layout_items (
		position INTEGER PRIMARY KEY,
		kind TEXT NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		path TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS folder_apps (
		folder_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		path TEXT NOT NULL,
		PRIMARY KEY (folder_id, position)
	);
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{conn: db, path: path}, nil
}

// Save replaces the stored layout in one transaction.
func (s *SQLiteStore) Save(items []model.Item) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM layout_items"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM folder_apps"); err != nil {
		return err
	}

	for pos, rec := range toRecords(items) {
		if _, err := tx.Exec(
			"INSERT INTO layout_items (position, kind, id, name, path) VALUES (?, ?, ?, ?, ?)",
			pos, rec.Kind, rec.ID, rec.Name, rec.Path,
		); err != nil {
			return err
		}
		for mpos, m := range rec.Apps {
			if _, err := tx.Exec(
				"INSERT INTO folder_apps (folder_id, position, id, name, path) VALUES (?, ?, ?, ?, ?)",
				rec.ID, mpos, m.ID, m.Name, m.Path,
			); err != nil {
				return err
			}
		}
	}

	// Distinguishes a saved empty layout from a fresh database.
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO settings (key, value) VALUES ('saved_at', ?)",
		time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	debug.Log(debug.STORE, "saved %d items to %s", len(items), s.path)
	return nil
}

func (s *SQLiteStore) Load() ([]model.Item, bool, error) {
	var savedAt string
	err := s.conn.QueryRow("SELECT value FROM settings WHERE key = 'saved_at'").Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	members, err := s.loadMembers()
	if err != nil {
		return nil, false, err
	}

	rows, err := s.conn.Query("SELECT kind, id, name, path FROM layout_items ORDER BY position ASC")
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var recs []record
	for rows.Next() {
		var rec record
		if err := rows.Scan(&rec.Kind, &rec.ID, &rec.Name, &rec.Path); err != nil {
			return nil, false, fmt.Errorf("scan layout row: %v: %w", err, ErrCorrupt)
		}
		if rec.Kind == model.KindFolder.String() {
			rec.Apps = members[rec.ID]
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	items, err := fromRecords(recs)
	if err != nil {
		return nil, false, err
	}
	debug.Log(debug.STORE, "loaded %d items (saved %s) from %s", len(items), savedAt, s.path)
	return items, true, nil
}

func (s *SQLiteStore) loadMembers() (map[string][]member, error) {
	rows, err := s.conn.Query("SELECT folder_id, id, name, path FROM folder_apps ORDER BY folder_id, position ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]member)
	for rows.Next() {
		var folderID string
		var m member
		if err := rows.Scan(&folderID, &m.ID, &m.Name, &m.Path); err != nil {
			return nil, fmt.Errorf("scan folder row: %v: %w", err, ErrCorrupt)
		}
		out[folderID] = append(out[folderID], m)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
