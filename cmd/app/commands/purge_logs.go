package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	vaultUsecase "github.com/aikey/vault/internal/vault/usecase"
)

// RunPurgeLogs deletes usage log entries older than the given retention window.
//
// Requirements: Database must be migrated and accessible.
func RunPurgeLogs(
	ctx context.Context,
	keyUseCase vaultUsecase.UseCase,
	logger *slog.Logger,
	olderThan time.Duration,
) error {
	if olderThan <= 0 {
		return fmt.Errorf("retention window must be positive, got: %s", olderThan)
	}

	logger.Info("purging usage logs", slog.Duration("older_than", olderThan))

	count, err := keyUseCase.PurgeLogs(ctx, olderThan)
	if err != nil {
		return fmt.Errorf("failed to purge usage logs: %w", err)
	}

	logger.Info("purge completed",
		slog.Int64("count", count),
		slog.Duration("older_than", olderThan),
	)

	return nil
}
