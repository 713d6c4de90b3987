package commands

import (
	"context"
	"fmt"
	"io"

	vaultUsecase "github.com/aikey/vault/internal/vault/usecase"
)

// RunRevealKey decrypts a stored key and writes the plaintext to the writer.
// The plaintext is deliberately not logged.
//
// Requirements: Database must be migrated and encryption initialized.
func RunRevealKey(
	ctx context.Context,
	keyUseCase vaultUsecase.UseCase,
	writer io.Writer,
	keyID string,
) error {
	plaintext, err := keyUseCase.DecryptKey(ctx, keyID)
	if err != nil {
		return fmt.Errorf("failed to decrypt key: %w", err)
	}

	_, _ = fmt.Fprintln(writer, plaintext)

	return nil
}
