// Package mocks provides mock implementations for testing command handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aikey/vault/internal/profile/domain"
	profileUsecase "github.com/aikey/vault/internal/profile/usecase"
)

// MockProfileUseCase is a mock implementation of the profile UseCase for testing.
type MockProfileUseCase struct {
	mock.Mock
}

// InitializeDefaultProfiles mocks the InitializeDefaultProfiles method.
func (m *MockProfileUseCase) InitializeDefaultProfiles(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// CreateProfile mocks the CreateProfile method.
func (m *MockProfileUseCase) CreateProfile(
	ctx context.Context,
	input profileUsecase.CreateProfileInput,
) (*domain.Profile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

// UpdateProfile mocks the UpdateProfile method.
func (m *MockProfileUseCase) UpdateProfile(
	ctx context.Context,
	profileID string,
	input profileUsecase.UpdateProfileInput,
) (*domain.Profile, error) {
	args := m.Called(ctx, profileID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

// DeleteProfile mocks the DeleteProfile method.
func (m *MockProfileUseCase) DeleteProfile(ctx context.Context, profileID string) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

// SetDefaultProfile mocks the SetDefaultProfile method.
func (m *MockProfileUseCase) SetDefaultProfile(ctx context.Context, profileID string) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

// GetDefaultProfile mocks the GetDefaultProfile method.
func (m *MockProfileUseCase) GetDefaultProfile(ctx context.Context) (*domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

// GetProfile mocks the GetProfile method.
func (m *MockProfileUseCase) GetProfile(ctx context.Context, profileID string) (*domain.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

// ListProfiles mocks the ListProfiles method.
func (m *MockProfileUseCase) ListProfiles(ctx context.Context) ([]*domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Profile), args.Error(1)
}

// GetSettings mocks the GetSettings method.
func (m *MockProfileUseCase) GetSettings(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Settings), args.Error(1)
}

// UpdateSettings mocks the UpdateSettings method.
func (m *MockProfileUseCase) UpdateSettings(
	ctx context.Context,
	patch domain.SettingsPatch,
) (domain.Settings, error) {
	args := m.Called(ctx, patch)
	return args.Get(0).(domain.Settings), args.Error(1)
}

// SetDomainProfilePreference mocks the SetDomainProfilePreference method.
func (m *MockProfileUseCase) SetDomainProfilePreference(ctx context.Context, webDomain, profileID string) error {
	args := m.Called(ctx, webDomain, profileID)
	return args.Error(0)
}

// GetDomainProfilePreference mocks the GetDomainProfilePreference method.
func (m *MockProfileUseCase) GetDomainProfilePreference(ctx context.Context, webDomain string) (string, error) {
	args := m.Called(ctx, webDomain)
	return args.String(0), args.Error(1)
}

// UpdateProfileMetadata mocks the UpdateProfileMetadata method.
func (m *MockProfileUseCase) UpdateProfileMetadata(
	ctx context.Context,
	profileID string,
	patch profileUsecase.MetadataPatch,
) error {
	args := m.Called(ctx, profileID, patch)
	return args.Error(0)
}

// CanDeleteProfile mocks the CanDeleteProfile method.
func (m *MockProfileUseCase) CanDeleteProfile(ctx context.Context, profileID string) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

// CanRenameProfile mocks the CanRenameProfile method.
func (m *MockProfileUseCase) CanRenameProfile(ctx context.Context, profileID string) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}
