package commands

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	vaultMocks "github.com/aikey/vault/internal/vault/usecase/mocks"
)

func TestRunPurgeLogs(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("success", func(t *testing.T) {
		mockUseCase := &vaultMocks.MockKeyUseCase{}
		mockUseCase.On("PurgeLogs", ctx, 30*24*time.Hour).Return(int64(12), nil)

		err := RunPurgeLogs(ctx, mockUseCase, logger, 30*24*time.Hour)

		require.NoError(t, err)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("non-positive-window", func(t *testing.T) {
		mockUseCase := &vaultMocks.MockKeyUseCase{}

		err := RunPurgeLogs(ctx, mockUseCase, logger, 0)

		require.Error(t, err)
		require.Contains(t, err.Error(), "retention window must be positive")
		mockUseCase.AssertNotCalled(t, "PurgeLogs")
	})
}
