package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	vaultDomain "github.com/aikey/vault/internal/vault/domain"
	vaultMocks "github.com/aikey/vault/internal/vault/usecase/mocks"
)

func TestRunListKeys(t *testing.T) {
	ctx := context.Background()

	t.Run("all-profiles", func(t *testing.T) {
		mockUseCase := &vaultMocks.MockKeyUseCase{}
		mockUseCase.On("ListKeys", ctx, "").Return([]*vaultDomain.EncryptedKey{
			{ID: "key-1", Name: "OpenAI - Personal", Service: vaultDomain.ServiceOpenAI, Tag: "dev"},
			{ID: "key-2", Name: "Anthropic - Work", Service: vaultDomain.ServiceAnthropic},
		}, nil)

		var out bytes.Buffer
		err := RunListKeys(ctx, mockUseCase, &out, "")

		require.NoError(t, err)
		require.Contains(t, out.String(), "key-1")
		require.Contains(t, out.String(), "#dev")
		require.Contains(t, out.String(), "Anthropic - Work [Anthropic]")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("profile-filter", func(t *testing.T) {
		mockUseCase := &vaultMocks.MockKeyUseCase{}
		mockUseCase.On("ListKeys", ctx, "work").Return([]*vaultDomain.EncryptedKey{}, nil)

		var out bytes.Buffer
		err := RunListKeys(ctx, mockUseCase, &out, "work")

		require.NoError(t, err)
		require.Contains(t, out.String(), "No keys found.")
		mockUseCase.AssertExpectations(t)
	})
}
