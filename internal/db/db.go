// Package db handles SQLite initialisation and schema migrations for the
// engine's two durable concerns: the offline credential store and the
// persisted session.
//
// The report working collection is deliberately NOT here — reports live in
// memory and the remote authority is their source of truth. Only state that
// must survive a process restart (who is signed in, and the offline
// accounts) touches disk.
//
// modernc.org/sqlite is a pure-Go port of SQLite: no CGo, no C toolchain on
// the build machine, cross-compiles cleanly. The driver registers itself
// under the name "sqlite".
package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) the SQLite database at dsn and runs all migrations.
//
// Recommended DSN formats:
//   - Production file: "civicsense.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
//   - Tests:           "file:testXYZ?mode=memory&cache=shared&_foreign_keys=on"
//
// Passing the pragmas as URI parameters means every connection in the
// database/sql pool gets them applied, not just the first.
func Open(dsn string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := migrate(database); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return database, nil
}

// migrate runs each DDL statement individually. The sqlite drivers execute
// only the first statement of a multi-statement Exec, so the schema is split
// on ";" and run in a loop.
func migrate(database *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migration statement failed: %w\nstatement: %s", err, stmt)
		}
	}
	return nil
}

// schema:
//
//	users   — offline accounts for the no-backend variant. One table for both
//	          citizen and municipal roles; the "role" column distinguishes
//	          them.
//
//	session — single-row key-value store for the persisted sign-in state,
//	          keyed by a fixed application identifier. The value is the JSON
//	          encoded session; a corrupt value is treated as signed out.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    name          TEXT NOT NULL,
    role          TEXT NOT NULL CHECK(role IN ('user','municipal')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS session (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
