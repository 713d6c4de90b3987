package commands

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	profileDomain "github.com/aikey/vault/internal/profile/domain"
	profileMocks "github.com/aikey/vault/internal/profile/usecase/mocks"
)

func TestRunSetDefaultProfile(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("success", func(t *testing.T) {
		mockUseCase := &profileMocks.MockProfileUseCase{}
		mockUseCase.On("SetDefaultProfile", ctx, "work").Return(nil)

		err := RunSetDefaultProfile(ctx, mockUseCase, logger, "work")

		require.NoError(t, err)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("missing-profile", func(t *testing.T) {
		mockUseCase := &profileMocks.MockProfileUseCase{}
		mockUseCase.On("SetDefaultProfile", ctx, "ghost").Return(profileDomain.ErrProfileNotFound)

		err := RunSetDefaultProfile(ctx, mockUseCase, logger, "ghost")

		require.Error(t, err)
		require.ErrorIs(t, err, profileDomain.ErrProfileNotFound)
		mockUseCase.AssertExpectations(t)
	})
}
