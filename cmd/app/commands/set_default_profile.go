package commands

import (
	"context"
	"fmt"
	"log/slog"

	profileUsecase "github.com/aikey/vault/internal/profile/usecase"
)

// RunSetDefaultProfile marks one profile as the default, clearing the flag
// from every other profile.
//
// Requirements: Database must be migrated and accessible.
func RunSetDefaultProfile(
	ctx context.Context,
	profileUseCase profileUsecase.UseCase,
	logger *slog.Logger,
	profileID string,
) error {
	if err := profileUseCase.SetDefaultProfile(ctx, profileID); err != nil {
		return fmt.Errorf("failed to set default profile: %w", err)
	}

	logger.Info("default profile updated", slog.String("profile_id", profileID))

	return nil
}
