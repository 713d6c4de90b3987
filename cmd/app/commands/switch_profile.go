package commands

import (
	"context"
	"fmt"
	"log/slog"

	vaultUsecase "github.com/aikey/vault/internal/vault/usecase"
)

// RunSwitchProfile makes the given profile the active one. Keys added without
// an explicit profile land on the active profile.
//
// Requirements: Database must be migrated and accessible.
func RunSwitchProfile(
	ctx context.Context,
	keyUseCase vaultUsecase.UseCase,
	logger *slog.Logger,
	profileID string,
) error {
	if err := keyUseCase.SwitchProfile(ctx, profileID); err != nil {
		return fmt.Errorf("failed to switch profile: %w", err)
	}

	logger.Info("active profile switched", slog.String("profile_id", profileID))

	return nil
}
