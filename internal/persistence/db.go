// Package persistence stores saved games and the event journal in SQLite or
// Postgres.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/config"
)

// ErrNoSave is returned when a slot holds no save.
var ErrNoSave = errors.New("no save in slot")

// DB wraps a database connection for save storage.
type DB struct {
	conn    *sqlx.DB
	dialect string
}

// Open connects to the database named by cfg and creates missing tables.
func Open(cfg config.Storage) (*DB, error) {
	var driver, dsn string
	switch cfg.Dialect {
	case "", "sqlite":
		driver = "sqlite"
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		dsn = cfg.SQLitePath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	case "postgres":
		driver = "pgx"
		dsn = cfg.PostgresDSN
		if dsn == "" {
			return nil, errors.New("postgres dialect requires a DSN")
		}
	default:
		return nil, fmt.Errorf("unsupported dialect %q", cfg.Dialect)
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	db := &DB{conn: conn, dialect: driver}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	slog.Info("database opened", "dialect", driver)
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.dialect == "pgx" {
		serial = "BIGSERIAL PRIMARY KEY"
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			saved_at TEXT NOT NULL,
			body TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS event_log (
			id ` + serial + `,
			run_id TEXT NOT NULL,
			game_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			day INTEGER NOT NULL,
			phase TEXT NOT NULL,
			category TEXT NOT NULL,
			description TEXT NOT NULL,
			UNIQUE (game_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_event_log_day ON event_log(day)`,
		`CREATE TABLE IF NOT EXISTS world_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := db.conn.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// SaveRow is a stored save.
type SaveRow struct {
	Slot          string `db:"slot"`
	SchemaVersion int    `db:"schema_version"`
	SavedAt       string `db:"saved_at"`
	Body          string `db:"body"`
}

// PutSave writes body into slot, replacing what was there.
func (db *DB) PutSave(slot string, version int, body []byte) error {
	_, err := db.conn.Exec(db.conn.Rebind(`INSERT INTO saves (slot, schema_version, saved_at, body)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET
			schema_version = excluded.schema_version,
			saved_at = excluded.saved_at,
			body = excluded.body`),
		slot, version, time.Now().UTC().Format(time.RFC3339), string(body),
	)
	if err != nil {
		return fmt.Errorf("put save %s: %w", slot, err)
	}
	return nil
}

// GetSave reads the save in slot.
func (db *DB) GetSave(slot string) (SaveRow, error) {
	var row SaveRow
	err := db.conn.Get(&row, db.conn.Rebind(
		"SELECT slot, schema_version, saved_at, body FROM saves WHERE slot = ?"), slot)
	if errors.Is(err, sql.ErrNoRows) {
		return row, fmt.Errorf("%w: %s", ErrNoSave, slot)
	}
	if err != nil {
		return row, fmt.Errorf("get save %s: %w", slot, err)
	}
	return row, nil
}

// ListSaves returns the stored slots, newest first, without bodies.
func (db *DB) ListSaves() ([]SaveRow, error) {
	var rows []SaveRow
	err := db.conn.Select(&rows,
		"SELECT slot, schema_version, saved_at, '' AS body FROM saves ORDER BY saved_at DESC")
	return rows, err
}

// DeleteSave removes a slot.
func (db *DB) DeleteSave(slot string) error {
	_, err := db.conn.Exec(db.conn.Rebind("DELETE FROM saves WHERE slot = ?"), slot)
	return err
}

// JournalEntry is one row of the event log. GameID and Seq identify the
// entry; writing the same pair twice keeps the first.
type JournalEntry struct {
	RunID       string `db:"run_id"`
	GameID      string `db:"game_id"`
	Seq         int    `db:"seq"`
	Day         int    `db:"day"`
	Phase       string `db:"phase"`
	Category    string `db:"category"`
	Description string `db:"description"`
}

// AppendJournal appends entries to the event log, skipping entries already
// recorded for the same game.
func (db *DB) AppendJournal(entries []JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(tx.Rebind(`INSERT INTO event_log
		(run_id, game_id, seq, day, phase, category, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (game_id, seq) DO NOTHING`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.RunID, e.GameID, e.Seq, e.Day, e.Phase, e.Category, e.Description); err != nil {
			return fmt.Errorf("insert journal entry: %w", err)
		}
	}
	return tx.Commit()
}

// RecentJournal returns the most recent limit entries, newest first.
func (db *DB) RecentJournal(limit int) ([]JournalEntry, error) {
	var entries []JournalEntry
	err := db.conn.Select(&entries, db.conn.Rebind(
		"SELECT run_id, game_id, seq, day, phase, category, description FROM event_log ORDER BY id DESC LIMIT ?"),
		limit,
	)
	return entries, err
}

// SaveMeta stores a key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(db.conn.Rebind(`INSERT INTO world_meta (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`),
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, db.conn.Rebind("SELECT value FROM world_meta WHERE key = ?"), key)
	return value, err
}
