package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
	path string
}

// New creates a new database connection
func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Use WAL mode for better concurrency
	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)

	return &DB{
		conn: conn,
		path: dbPath,
	}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the on-disk location of the database file
func (db *DB) Path() string {
	return db.path
}

// Migrate creates the schema if it does not exist yet
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Begin starts a new transaction
func (db *DB) Begin() (*sql.Tx, error) {
	return db.conn.Begin()
}

// Exec executes a query without returning rows
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

// Query executes a query that returns rows
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

// QueryRow executes a query that returns at most one row
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(query, args...)
}

const schema = `
CREATE TABLE IF NOT EXISTS hvcs (
	campaign_id TEXT PRIMARY KEY,
	name        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sector_teams (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS parent_sectors (
	id             INTEGER PRIMARY KEY,
	name           TEXT NOT NULL,
	sector_team_id INTEGER NOT NULL REFERENCES sector_teams(id)
);

CREATE TABLE IF NOT EXISTS sectors (
	id               INTEGER PRIMARY KEY,
	name             TEXT NOT NULL,
	sector_team_id   INTEGER NOT NULL REFERENCES sector_teams(id),
	parent_sector_id INTEGER REFERENCES parent_sectors(id)
);

CREATE TABLE IF NOT EXISTS hvc_groups (
	id             INTEGER PRIMARY KEY,
	name           TEXT NOT NULL,
	sector_team_id INTEGER NOT NULL REFERENCES sector_teams(id)
);

CREATE TABLE IF NOT EXISTS overseas_regions (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS countries (
	id                 INTEGER PRIMARY KEY,
	code               TEXT NOT NULL UNIQUE,
	name               TEXT NOT NULL,
	overseas_region_id INTEGER NOT NULL REFERENCES overseas_regions(id)
);

CREATE TABLE IF NOT EXISTS targets (
	campaign_id    TEXT PRIMARY KEY REFERENCES hvcs(campaign_id),
	target         INTEGER NOT NULL,
	sector_team_id INTEGER NOT NULL REFERENCES sector_teams(id),
	hvc_group_id   INTEGER NOT NULL REFERENCES hvc_groups(id),
	country_id     INTEGER NOT NULL REFERENCES countries(id)
);

CREATE TABLE IF NOT EXISTS wins (
	id               TEXT PRIMARY KEY,
	hvc              TEXT,
	sector           INTEGER NOT NULL,
	country          TEXT NOT NULL,
	date             TEXT NOT NULL,
	export_value     INTEGER NOT NULL,
	non_export_value INTEGER NOT NULL,
	is_active        INTEGER NOT NULL DEFAULT 1,
	complete         INTEGER NOT NULL DEFAULT 0,
	created          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_wins_date    ON wins(date);
CREATE INDEX IF NOT EXISTS idx_wins_hvc     ON wins(hvc);
CREATE INDEX IF NOT EXISTS idx_wins_sector  ON wins(sector);
CREATE INDEX IF NOT EXISTS idx_wins_country ON wins(country);

CREATE TABLE IF NOT EXISTS notifications (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	win_id  TEXT NOT NULL REFERENCES wins(id),
	type    TEXT NOT NULL,
	created TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notifications_win ON notifications(win_id, created);

CREATE TABLE IF NOT EXISTS customer_responses (
	win_id         TEXT PRIMARY KEY REFERENCES wins(id),
	agree_with_win INTEGER,
	created        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS report_cache (
	key          TEXT PRIMARY KEY,
	payload      BLOB NOT NULL,
	generated_at TEXT NOT NULL
);
`
