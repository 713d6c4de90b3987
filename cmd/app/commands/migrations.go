package commands

import (
	"fmt"

	"github.com/aikey/vault/internal/app"
)

// RunMigrations applies the embedded schema migrations against the configured
// database file. Returns nil if the schema is already up to date.
func RunMigrations(container *app.Container) error {
	logger := container.Logger()

	logger.Info("running database migrations")

	if err := container.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
