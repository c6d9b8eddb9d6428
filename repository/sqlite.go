package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS todos (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	completed   INTEGER NOT NULL DEFAULT 0,
	priority    TEXT NOT NULL,
	category    TEXT NOT NULL DEFAULT '',
	due_date    INTEGER,
	created_at  DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_todos_user_created ON todos(user_id, created_at);

CREATE TABLE IF NOT EXISTS summaries (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL UNIQUE,
	content         TEXT NOT NULL,
	todo_count      INTEGER NOT NULL DEFAULT 0,
	completed_count INTEGER NOT NULL DEFAULT 0,
	pending_count   INTEGER NOT NULL DEFAULT 0,
	insights        TEXT NOT NULL DEFAULT '',
	created_at      DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	email      TEXT UNIQUE,
	password   TEXT NOT NULL DEFAULT '',
	anonymous  INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL,
	created_at       DATETIME NOT NULL,
	expires_at       DATETIME NOT NULL,
	last_activity_at DATETIME NOT NULL,
	device_info      TEXT NOT NULL DEFAULT '',
	ip_address       TEXT NOT NULL DEFAULT '',
	is_active        INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id, is_active);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}

// SQLiteDB is the embedded backend used for local development and tests.
type SQLiteDB struct {
	db *sqlx.DB
}

// OpenSQLite opens (or creates) the database at path and applies any
// outstanding migrations. ":memory:" gives a private throwaway database.
func OpenSQLite(path string) (*SQLiteDB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if path == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteDB{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'")
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}
	if tableCount > 0 {
		if err := s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}
	return nil
}

// NewSQLiteRepos wires every store to the same database handle.
func NewSQLiteRepos(s *SQLiteDB) *Repos {
	return &Repos{
		Todos:     &SQLiteTodos{db: s.db},
		Summaries: &SQLiteSummaries{db: s.db},
		Users:     &SQLiteUsers{db: s.db},
		Sessions:  &SQLiteSessions{db: s.db},
		ping:      s.db.PingContext,
		close: func(context.Context) error {
			return s.Close()
		},
	}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
