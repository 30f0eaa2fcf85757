package history

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file:// migration source
)

// Migrate applies all pending up migrations from migrationsPath, e.g.
// "file://history/migrations". A database with nothing pending is not
// an error.
//
// The migrator takes ownership of db and closes it when done.
func Migrate(db *sql.DB, migrationsPath string) error {
	if db == nil {
		return errors.New("history: database connection is required")
	}
	if migrationsPath == "" {
		return errors.New("history: migrations path is required")
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{DatabaseName: "main"})
	if err != nil {
		return fmt.Errorf("history: create sqlite driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("history: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("history: apply migrations: %w", err)
	}
	return nil
}

// Setup migrates the database at path and returns a fresh connection
// ready for use. The migration step uses its own connection.
func Setup(path, migrationsPath string) (*sql.DB, error) {
	db, err := OpenDefault(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db, migrationsPath); err != nil {
		return nil, err
	}
	return OpenDefault(path)
}
