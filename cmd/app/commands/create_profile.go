package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	profileUsecase "github.com/aikey/vault/internal/profile/usecase"
)

// RunCreateProfile creates a new user profile and prints its generated ID.
//
// Requirements: Database must be migrated and accessible.
func RunCreateProfile(
	ctx context.Context,
	profileUseCase profileUsecase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	color string,
	icon string,
	description string,
) error {
	logger.Info("creating profile", slog.String("name", name))

	profile, err := profileUseCase.CreateProfile(ctx, profileUsecase.CreateProfileInput{
		Name:        name,
		Color:       color,
		Icon:        icon,
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "Profile created successfully!")
	_, _ = fmt.Fprintf(writer, "ID:    %s\n", profile.ID)
	_, _ = fmt.Fprintf(writer, "Name:  %s\n", profile.Name)
	_, _ = fmt.Fprintf(writer, "Color: %s\n", profile.Color)
	_, _ = fmt.Fprintf(writer, "Icon:  %s\n", profile.Icon)

	logger.Info("profile created",
		slog.String("profile_id", profile.ID),
		slog.String("name", profile.Name),
	)

	return nil
}
