package commands

import (
	"context"
	"fmt"
	"io"

	profileUsecase "github.com/aikey/vault/internal/profile/usecase"
)

// RunListProfiles prints every profile, marking the default one.
//
// Requirements: Database must be migrated and accessible.
func RunListProfiles(
	ctx context.Context,
	profileUseCase profileUsecase.UseCase,
	writer io.Writer,
) error {
	profiles, err := profileUseCase.ListProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	if len(profiles) == 0 {
		_, _ = fmt.Fprintln(writer, "No profiles found. Run 'init' first.")
		return nil
	}

	for _, profile := range profiles {
		marker := " "
		if profile.IsDefault {
			marker = "*"
		}
		_, _ = fmt.Fprintf(writer, "%s %s  %s %s (keys: %d)\n",
			marker, profile.ID, profile.Icon, profile.Name, profile.Metadata.KeyCount)
	}

	return nil
}
