// Package mocks provides mock implementations for testing command handlers.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/aikey/vault/internal/vault/domain"
	vaultUsecase "github.com/aikey/vault/internal/vault/usecase"
)

// MockKeyUseCase is a mock implementation of the key UseCase for testing.
type MockKeyUseCase struct {
	mock.Mock
}

// AddKey mocks the AddKey method.
func (m *MockKeyUseCase) AddKey(ctx context.Context, input vaultUsecase.AddKeyInput) (*domain.EncryptedKey, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EncryptedKey), args.Error(1)
}

// UpdateKey mocks the UpdateKey method.
func (m *MockKeyUseCase) UpdateKey(
	ctx context.Context,
	keyID string,
	input vaultUsecase.UpdateKeyInput,
) (*domain.EncryptedKey, error) {
	args := m.Called(ctx, keyID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EncryptedKey), args.Error(1)
}

// DeleteKey mocks the DeleteKey method.
func (m *MockKeyUseCase) DeleteKey(ctx context.Context, keyID string) error {
	args := m.Called(ctx, keyID)
	return args.Error(0)
}

// GetKey mocks the GetKey method.
func (m *MockKeyUseCase) GetKey(ctx context.Context, keyID string) (*domain.EncryptedKey, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EncryptedKey), args.Error(1)
}

// ListKeys mocks the ListKeys method.
func (m *MockKeyUseCase) ListKeys(ctx context.Context, profileID string) ([]*domain.EncryptedKey, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.EncryptedKey), args.Error(1)
}

// DecryptKey mocks the DecryptKey method.
func (m *MockKeyUseCase) DecryptKey(ctx context.Context, keyID string) (string, error) {
	args := m.Called(ctx, keyID)
	return args.String(0), args.Error(1)
}

// SwitchProfile mocks the SwitchProfile method.
func (m *MockKeyUseCase) SwitchProfile(ctx context.Context, profileID string) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

// CurrentProfile mocks the CurrentProfile method.
func (m *MockKeyUseCase) CurrentProfile(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// RecordBinding mocks the RecordBinding method.
func (m *MockKeyUseCase) RecordBinding(
	ctx context.Context,
	webDomain, profileID, keyID string,
	service domain.ServiceType,
) (*domain.SiteBinding, error) {
	args := m.Called(ctx, webDomain, profileID, keyID, service)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SiteBinding), args.Error(1)
}

// SiteRecommendations mocks the SiteRecommendations method.
func (m *MockKeyUseCase) SiteRecommendations(
	ctx context.Context,
	webDomain, profileID string,
) ([]*domain.SiteBinding, error) {
	args := m.Called(ctx, webDomain, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SiteBinding), args.Error(1)
}

// LogUsage mocks the LogUsage method.
func (m *MockKeyUseCase) LogUsage(ctx context.Context, keyID, webDomain string, action domain.UsageAction) error {
	args := m.Called(ctx, keyID, webDomain, action)
	return args.Error(0)
}

// PurgeLogs mocks the PurgeLogs method.
func (m *MockKeyUseCase) PurgeLogs(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}
