// Package sqlite is the relational store: a single-file SQLite database
// accessed through database/sql with parameterized queries only.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const connectTimeout = 5 * time.Second

// schema is owned here and applied idempotently at startup. The UNIQUE
// constraint on (username, discriminator) is the final arbiter of the
// discriminator allocation race.
const schema = `
CREATE TABLE IF NOT EXISTS user (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	username      TEXT    NOT NULL,
	discriminator INTEGER NOT NULL,
	password_hash TEXT    NOT NULL,
	salt          BLOB    NOT NULL,
	created       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (username, discriminator)
);

CREATE TABLE IF NOT EXISTS post (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	author_id INTEGER NOT NULL REFERENCES user (id),
	title     TEXT    NOT NULL,
	content   TEXT    NOT NULL,
	created   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS comment (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	post_id   INTEGER NOT NULL REFERENCES post (id) ON DELETE CASCADE,
	author_id INTEGER NOT NULL REFERENCES user (id),
	content   TEXT    NOT NULL,
	created   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Open connects to the database file, validates connectivity and applies the
// schema. Use ":memory:" for tests.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection to :memory: would get its own empty
		// database, so keep the pool at a single connection.
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
