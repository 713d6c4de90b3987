package commands

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	vaultMocks "github.com/aikey/vault/internal/vault/usecase/mocks"
)

func TestRunSwitchProfile(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("success", func(t *testing.T) {
		mockUseCase := &vaultMocks.MockKeyUseCase{}
		mockUseCase.On("SwitchProfile", ctx, "work").Return(nil)

		err := RunSwitchProfile(ctx, mockUseCase, logger, "work")

		require.NoError(t, err)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("error", func(t *testing.T) {
		mockUseCase := &vaultMocks.MockKeyUseCase{}
		mockUseCase.On("SwitchProfile", ctx, "ghost").Return(errors.New("profile not found"))

		err := RunSwitchProfile(ctx, mockUseCase, logger, "ghost")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to switch profile")
		mockUseCase.AssertExpectations(t)
	})
}
