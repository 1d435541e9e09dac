// Package persistence provides SQLite-based world state storage. Full
// world snapshots are stored as zstd-compressed JSON blobs keyed by
// tick, so a run can resume from the latest save or any retained tick.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/talgya/soulfield/internal/world"
)

// ErrNoSnapshot is returned when the store holds no saved world.
var ErrNoSnapshot = errors.New("persistence: no snapshot stored")

var (
	encoder, _ = zstd.NewWriter(nil)
	decoder, _ = zstd.NewReader(nil)
)

// Store wraps a SQLite connection for world state persistence.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		tick INTEGER PRIMARY KEY,
		world_time REAL NOT NULL,
		saved_at TEXT NOT NULL,
		raw_size INTEGER NOT NULL,
		data BLOB NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		time REAL NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_tick ON events(tick);
	CREATE INDEX IF NOT EXISTS idx_events_category ON events(category);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SaveSnapshot stores a world snapshot, replacing any existing save for
// the same tick.
func (s *Store) SaveSnapshot(snap *world.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	blob := encoder.EncodeAll(raw, nil)

	_, err = s.conn.Exec(
		`INSERT OR REPLACE INTO snapshots (tick, world_time, saved_at, raw_size, data)
		 VALUES (?, ?, ?, ?, ?)`,
		snap.TickCount, snap.WorldTime, time.Now().UTC().Format(time.RFC3339), len(raw), blob,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	slog.Info("snapshot saved",
		"tick", snap.TickCount,
		"entities", len(snap.Entities),
		"raw_bytes", len(raw),
		"stored_bytes", len(blob))
	return nil
}

// LoadLatest returns the snapshot with the highest tick, or ErrNoSnapshot.
func (s *Store) LoadLatest() (*world.Snapshot, error) {
	var blob []byte
	err := s.conn.Get(&blob, "SELECT data FROM snapshots ORDER BY tick DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load latest snapshot: %w", err)
	}
	return decode(blob)
}

// LoadAt returns the snapshot stored for an exact tick.
func (s *Store) LoadAt(tick uint64) (*world.Snapshot, error) {
	var blob []byte
	err := s.conn.Get(&blob, "SELECT data FROM snapshots WHERE tick = ?", tick)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot at tick %d: %w", tick, err)
	}
	return decode(blob)
}

func decode(blob []byte) (*world.Snapshot, error) {
	raw, err := decoder.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	var snap world.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// PruneSnapshots keeps the newest n snapshots and deletes the rest.
func (s *Store) PruneSnapshots(keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := s.conn.Exec(
		`DELETE FROM snapshots WHERE tick NOT IN
		 (SELECT tick FROM snapshots ORDER BY tick DESC LIMIT ?)`, keep)
	return err
}

// SaveEvents appends events to the database.
func (s *Store) SaveEvents(events []world.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (tick, time, description, category) VALUES (?, ?, ?, ?)",
			e.Tick, e.Time, e.Description, e.Category,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentEvents returns the most recent N events, newest first.
func (s *Store) RecentEvents(limit int) ([]world.Event, error) {
	var events []world.Event
	err := s.conn.Select(&events,
		"SELECT tick, time, description, category FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}

// SaveMeta stores a key-value pair in world metadata.
func (s *Store) SaveMeta(key, value string) error {
	_, err := s.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (s *Store) GetMeta(key string) (string, error) {
	var value string
	err := s.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}
