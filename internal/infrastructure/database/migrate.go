package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate applies all pending migrations from the configured path.
// ErrNoChange is not an error: the schema is simply up to date.
func (db *PostgresDB) Migrate() error {
	sourceURL := fmt.Sprintf("file://%s", db.Config.MigrationsPath)

	m, err := migrate.New(sourceURL, db.DSN())
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("[DATABASE] Schema up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Println("[DATABASE] Migrations applied")
	return nil
}
