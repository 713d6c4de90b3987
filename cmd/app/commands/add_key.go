package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	vaultUsecase "github.com/aikey/vault/internal/vault/usecase"
)

// RunAddKey encrypts an API key and stores it on a profile. When profileID is
// empty the key lands on the active profile.
//
// Requirements: Database must be migrated and encryption initialized.
func RunAddKey(
	ctx context.Context,
	keyUseCase vaultUsecase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	value string,
	service string,
	name string,
	tag string,
	profileID string,
) error {
	serviceType, err := parseServiceType(service)
	if err != nil {
		return err
	}

	key, err := keyUseCase.AddKey(ctx, vaultUsecase.AddKeyInput{
		Plaintext: value,
		Service:   serviceType,
		Name:      name,
		Tag:       tag,
		ProfileID: profileID,
	})
	if err != nil {
		return fmt.Errorf("failed to add key: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "Key stored successfully!")
	_, _ = fmt.Fprintf(writer, "ID:      %s\n", key.ID)
	_, _ = fmt.Fprintf(writer, "Name:    %s\n", key.Name)
	_, _ = fmt.Fprintf(writer, "Service: %s\n", key.Service)
	_, _ = fmt.Fprintf(writer, "Profile: %s\n", key.ProfileID)

	logger.Info("key added",
		slog.String("key_id", key.ID),
		slog.String("service", string(key.Service)),
		slog.String("profile_id", key.ProfileID),
	)

	return nil
}
