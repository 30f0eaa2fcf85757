// Package history records processing runs in a local SQLite database so
// past icon batches and removals can be inspected later.
package history

import (
	"database/sql"
	"fmt"
	"time"

	// Pure Go SQLite driver, no CGO required.
	_ "modernc.org/sqlite"
)

// ConnectionConfig holds configuration for the SQLite connection.
type ConnectionConfig struct {
	// Path is the database file path.
	Path string
	// BusyTimeout is how long to wait for locks, in milliseconds.
	BusyTimeout int
	// MaxOpenConns limits concurrent connections. SQLite handles
	// concurrency best with a single writer.
	MaxOpenConns int
	// MaxIdleConns limits idle connections in the pool.
	MaxIdleConns int
	// ConnMaxLifetime limits connection reuse; zero means no limit.
	ConnMaxLifetime time.Duration
}

// DefaultConnectionConfig returns WAL-mode defaults for path.
func DefaultConnectionConfig(path string) ConnectionConfig {
	return ConnectionConfig{
		Path:         path,
		BusyTimeout:  5000,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
}

// Open creates a SQLite connection with WAL mode enabled. WAL gives
// concurrent readers with a single writer plus crash recovery.
func Open(config ConnectionConfig) (*sql.DB, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("history: database path is required")
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: ping database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", config.BusyTimeout),
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("history: set pragma %q: %w", pragma, err)
		}
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		db.Close()
		return nil, fmt.Errorf("history: WAL mode not enabled, got %s", journalMode)
	}

	return db, nil
}

// OpenDefault opens path with the default connection configuration.
func OpenDefault(path string) (*sql.DB, error) {
	return Open(DefaultConnectionConfig(path))
}
