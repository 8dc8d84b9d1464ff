// Package storage journals generated flavor lines in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only display strings are stored; run state is never persisted.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// MemoryPath opens a private in-memory journal.
const MemoryPath = ":memory:"

// Kind distinguishes the two flavor calls.
type Kind string

const (
	KindNews     Kind = "news"
	KindDialogue Kind = "dialogue"
)

// Store manages the SQLite connection for the flavor journal.
type Store struct {
	db *sql.DB
}

// Line is a single journaled flavor string.
type Line struct {
	ID       int64
	RunID    string
	Kind     Kind
	ActorID  string // dialogue speaker; empty for news
	ActionID string
	Subject  string // character name the headline was written about
	Text     string

	CreatedAt time.Time
}

// KindStats aggregates the journal per kind.
type KindStats struct {
	Kind      Kind
	Count     int
	LastSaved time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	memory := dbPath == MemoryPath

	if !memory {
		// Expand ~ to home directory
		if strings.HasPrefix(dbPath, "~") {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}

		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if memory {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS flavor_lines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL DEFAULT '',
			kind TEXT NOT NULL,
			actor_id TEXT NOT NULL DEFAULT '',
			action_id TEXT NOT NULL DEFAULT '',
			subject TEXT NOT NULL DEFAULT '',
			text TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_flavor_lines_kind_action ON flavor_lines(kind, action_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveLine journals a generated line and returns its ID.
func (s *Store) SaveLine(l Line) (int64, error) {
	if l.Kind != KindNews && l.Kind != KindDialogue {
		return 0, fmt.Errorf("storage: unknown line kind %q", l.Kind)
	}
	if strings.TrimSpace(l.Text) == "" {
		return 0, fmt.Errorf("storage: refusing to save empty line")
	}

	result, err := s.db.Exec(
		`INSERT INTO flavor_lines (run_id, kind, actor_id, action_id, subject, text)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		l.RunID, string(l.Kind), l.ActorID, l.ActionID, l.Subject, l.Text,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save line: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Lines returns the newest lines of the given kind. An empty actionID
// matches every action.
func (s *Store) Lines(kind Kind, actionID string, limit int) ([]Line, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, run_id, kind, actor_id, action_id, subject, text, created_at
		 FROM flavor_lines
		 WHERE kind = ?`
	args := []any{string(kind)}
	if actionID != "" {
		query += " AND action_id = ?"
		args = append(args, actionID)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	return s.queryLines(query, args...)
}

// RecentLines returns the newest lines of any kind.
func (s *Store) RecentLines(limit int) ([]Line, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.queryLines(
		`SELECT id, run_id, kind, actor_id, action_id, subject, text, created_at
		 FROM flavor_lines
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryLines(query string, args ...any) ([]Line, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query lines: %w", err)
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		var kind string
		var createdAt any
		if err := rows.Scan(&l.ID, &l.RunID, &kind, &l.ActorID, &l.ActionID, &l.Subject, &l.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		l.Kind = Kind(kind)
		l.CreatedAt = parseTime(createdAt)
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return lines, nil
}

// Stats returns per-kind counts, ordered by kind.
func (s *Store) Stats() ([]KindStats, error) {
	rows, err := s.db.Query(
		`SELECT kind, COUNT(*), MAX(created_at)
		 FROM flavor_lines
		 GROUP BY kind
		 ORDER BY kind`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	var stats []KindStats
	for rows.Next() {
		var st KindStats
		var kind string
		var lastSaved any
		if err := rows.Scan(&kind, &st.Count, &lastSaved); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.Kind = Kind(kind)
		st.LastSaved = parseTime(lastSaved)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// Clear deletes every journaled line.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM flavor_lines"); err != nil {
		return fmt.Errorf("storage: cannot clear journal: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
