package commands

import (
	"context"
	"fmt"
	"log/slog"

	vaultUsecase "github.com/aikey/vault/internal/vault/usecase"
)

// RunDeleteKey removes a stored key and decrements its profile's key count.
//
// Requirements: Database must be migrated and accessible.
func RunDeleteKey(
	ctx context.Context,
	keyUseCase vaultUsecase.UseCase,
	logger *slog.Logger,
	keyID string,
) error {
	if err := keyUseCase.DeleteKey(ctx, keyID); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}

	logger.Info("key deleted", slog.String("key_id", keyID))

	return nil
}
