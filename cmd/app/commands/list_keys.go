package commands

import (
	"context"
	"fmt"
	"io"

	vaultUsecase "github.com/aikey/vault/internal/vault/usecase"
)

// RunListKeys prints stored keys without touching their ciphertext. An empty
// profileID lists keys across every profile.
//
// Requirements: Database must be migrated and accessible.
func RunListKeys(
	ctx context.Context,
	keyUseCase vaultUsecase.UseCase,
	writer io.Writer,
	profileID string,
) error {
	keys, err := keyUseCase.ListKeys(ctx, profileID)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	if len(keys) == 0 {
		_, _ = fmt.Fprintln(writer, "No keys found.")
		return nil
	}

	for _, key := range keys {
		line := fmt.Sprintf("%s  %s [%s]", key.ID, key.Name, key.Service)
		if key.Tag != "" {
			line += fmt.Sprintf(" #%s", key.Tag)
		}
		_, _ = fmt.Fprintln(writer, line)
	}

	return nil
}
