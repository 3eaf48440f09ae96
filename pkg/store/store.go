// Package store persists the engine's mood and classification history in
// SQLite so a restarted daemon wakes up in the emotional state it went
// down with.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/visagelabs/go-visage/pkg/pad"
	"github.com/visagelabs/go-visage/pkg/semantics"
)

// ErrNoMood indicates no mood has been saved yet.
var ErrNoMood = errors.New("store: no saved mood")

const schema = `
CREATE TABLE IF NOT EXISTS mood (
	id        INTEGER PRIMARY KEY CHECK (id = 1),
	pleasure  REAL NOT NULL,
	arousal   REAL NOT NULL,
	dominance REAL NOT NULL,
	saved_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS classifications (
	id       TEXT PRIMARY KEY,
	category TEXT NOT NULL,
	variant  TEXT NOT NULL,
	at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_classifications_at ON classifications(at);
`

// Store wraps the SQLite connection.
type Store struct {
	conn *sql.DB
	path string
}

// Open opens or creates the store at path, creating parent directories as
// needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return open(path)
}

// OpenInMemory opens an ephemeral store, used in tests.
func OpenInMemory() (*Store, error) {
	return open(":memory:")
}

func open(dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite handles one writer; serialize access through a single conn.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{conn: conn, path: dsn}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// SaveMood upserts the single persisted mood row.
func (s *Store) SaveMood(m pad.Emotion) error {
	m = m.Clamped()
	_, err := s.conn.Exec(`
		INSERT INTO mood (id, pleasure, arousal, dominance, saved_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			pleasure = excluded.pleasure,
			arousal = excluded.arousal,
			dominance = excluded.dominance,
			saved_at = excluded.saved_at`,
		m.Pleasure, m.Arousal, m.Dominance, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save mood: %w", err)
	}
	return nil
}

// LoadMood returns the persisted mood, or ErrNoMood if none was saved.
func (s *Store) LoadMood() (pad.Emotion, error) {
	var m pad.Emotion
	err := s.conn.QueryRow(
		"SELECT pleasure, arousal, dominance FROM mood WHERE id = 1").
		Scan(&m.Pleasure, &m.Arousal, &m.Dominance)
	if errors.Is(err, sql.ErrNoRows) {
		return pad.Neutral, ErrNoMood
	}
	if err != nil {
		return pad.Neutral, fmt.Errorf("load mood: %w", err)
	}
	return m.Clamped(), nil
}

// AppendRecords writes classification records, skipping ids already
// stored. Autosave passes the full in-memory history each time; the
// primary key makes that idempotent.
func (s *Store) AppendRecords(records []semantics.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}

	for _, rec := range records {
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO classifications (id, category, variant, at)
			VALUES (?, ?, ?, ?)`,
			rec.ID.String(), string(rec.Category), rec.Variant,
			rec.At.UTC().Format(time.RFC3339Nano)); err != nil {
			tx.Rollback()
			return fmt.Errorf("append record %s: %w", rec.ID, err)
		}
	}

	return tx.Commit()
}

// RecentRecords returns up to limit records, newest first.
func (s *Store) RecentRecords(limit int) ([]semantics.Record, error) {
	if limit <= 0 {
		limit = semantics.HistoryCapacity
	}

	rows, err := s.conn.Query(`
		SELECT id, category, variant, at FROM classifications
		ORDER BY at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []semantics.Record
	for rows.Next() {
		var idStr, catStr, atStr string
		var rec semantics.Record
		if err := rows.Scan(&idStr, &catStr, &rec.Variant, &atStr); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse record id %q: %w", idStr, err)
		}
		rec.ID = id
		rec.Category = semantics.Category(catStr)

		at, err := time.Parse(time.RFC3339Nano, atStr)
		if err != nil {
			return nil, fmt.Errorf("parse record time %q: %w", atStr, err)
		}
		rec.At = at

		out = append(out, rec)
	}
	return out, rows.Err()
}
