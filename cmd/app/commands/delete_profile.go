package commands

import (
	"context"
	"fmt"
	"log/slog"

	profileUsecase "github.com/aikey/vault/internal/profile/usecase"
)

// RunDeleteProfile deletes a profile together with its keys and site bindings.
// Built-in profiles, the last remaining profile and profiles that still hold
// keys are refused by the use case.
//
// Requirements: Database must be migrated and accessible.
func RunDeleteProfile(
	ctx context.Context,
	profileUseCase profileUsecase.UseCase,
	logger *slog.Logger,
	profileID string,
) error {
	logger.Info("deleting profile", slog.String("profile_id", profileID))

	if err := profileUseCase.DeleteProfile(ctx, profileID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	logger.Info("profile deleted", slog.String("profile_id", profileID))

	return nil
}
