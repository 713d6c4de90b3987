package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aikey/vault/internal/app"
)

// RunInit prepares a fresh installation: it applies the schema migrations,
// seeds the built-in profiles and derives the encryption key for this device.
// Running it against an existing store is a no-op for every step.
func RunInit(ctx context.Context, container *app.Container) error {
	logger := container.Logger()
	logger.Info("initializing vault")

	if err := container.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	profileUseCase, err := container.ProfileUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize profile use case: %w", err)
	}
	if err := profileUseCase.InitializeDefaultProfiles(ctx); err != nil {
		return fmt.Errorf("failed to seed default profiles: %w", err)
	}

	encryptionService, err := container.EncryptionService()
	if err != nil {
		return fmt.Errorf("failed to initialize encryption service: %w", err)
	}
	if err := encryptionService.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize encryption: %w", err)
	}

	logger.Info("vault initialized",
		slog.String("database", container.Config().DBPath),
	)

	return nil
}
