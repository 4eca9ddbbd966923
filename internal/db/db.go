package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// pragmas applied to every connection handed out by OpenDB.
var pragmas = []struct{ name, stmt string }{
	{"journal mode", "PRAGMA journal_mode = WAL"},
	{"busy timeout", "PRAGMA busy_timeout = 3000"},
	{"foreign keys", "PRAGMA foreign_keys = ON"},
}

// OpenDB opens and migrates the key-value database at path, creating parent
// directories as needed. An in-memory database exists only on the connection
// that created it, so its pool is pinned to a single connection.
func OpenDB(path string) (*sql.DB, error) {
	inMemory := path == MemoryPath
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if inMemory {
		database.SetMaxOpenConns(1)
	}

	if err := prepare(database); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func prepare(database *sql.DB) error {
	for _, p := range pragmas {
		if _, err := database.Exec(p.stmt); err != nil {
			return fmt.Errorf("setting %s: %w", p.name, err)
		}
	}
	if err := Migrate(database); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
