// Package usecase implements the profile lifecycle business logic: seeding,
// validation, default bookkeeping, settings and cascading deletes.
package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/aikey/vault/internal/database"
	apperrors "github.com/aikey/vault/internal/errors"
	"github.com/aikey/vault/internal/profile/domain"
	appValidation "github.com/aikey/vault/internal/validation"
	vaultDomain "github.com/aikey/vault/internal/vault/domain"
)

// CreateProfileInput contains the input data for profile creation.
type CreateProfileInput struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// UpdateProfileInput is a partial profile update. Nil fields are left
// untouched; present fields are validated with the creation rules.
type UpdateProfileInput struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

// MetadataPatch is a partial update of a profile's metadata block.
type MetadataPatch struct {
	KeyCount    *int    `json:"keyCount"`
	LastUsed    *int64  `json:"lastUsed"`
	Description *string `json:"description"`
}

// UseCase defines the interface for profile lifecycle operations.
type UseCase interface {
	InitializeDefaultProfiles(ctx context.Context) error
	CreateProfile(ctx context.Context, input CreateProfileInput) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, profileID string, input UpdateProfileInput) (*domain.Profile, error)
	DeleteProfile(ctx context.Context, profileID string) error
	SetDefaultProfile(ctx context.Context, profileID string) error
	GetDefaultProfile(ctx context.Context) (*domain.Profile, error)
	GetProfile(ctx context.Context, profileID string) (*domain.Profile, error)
	ListProfiles(ctx context.Context) ([]*domain.Profile, error)
	GetSettings(ctx context.Context) (domain.Settings, error)
	UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error)
	SetDomainProfilePreference(ctx context.Context, webDomain, profileID string) error
	GetDomainProfilePreference(ctx context.Context, webDomain string) (string, error)
	UpdateProfileMetadata(ctx context.Context, profileID string, patch MetadataPatch) error
	CanDeleteProfile(ctx context.Context, profileID string) error
	CanRenameProfile(ctx context.Context, profileID string) error
}

// ProfileRepository interface defines profile repository operations.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, profileID string) error
	Get(ctx context.Context, profileID string) (*domain.Profile, error)
	GetAll(ctx context.Context) ([]*domain.Profile, error)
	Count(ctx context.Context) (int, error)
	SetDefault(ctx context.Context, profileID string) error
}

// SettingsRepository interface defines settings repository operations.
type SettingsRepository interface {
	Get(ctx context.Context) (domain.Settings, bool, error)
	Set(ctx context.Context, settings domain.Settings) error
}

// PreferenceRepository interface defines domain preference repository operations.
type PreferenceRepository interface {
	Upsert(ctx context.Context, pref *domain.DomainPreference) error
	GetByDomain(ctx context.Context, webDomain string) (*domain.DomainPreference, error)
}

// KeyRepository is the slice of the key store needed for cascading deletes.
type KeyRepository interface {
	GetByProfile(ctx context.Context, profileID string) ([]*vaultDomain.EncryptedKey, error)
	Delete(ctx context.Context, keyID string) error
}

// BindingRepository is the slice of the binding store needed for cascading deletes.
type BindingRepository interface {
	GetByProfile(ctx context.Context, profileID string) ([]*vaultDomain.SiteBinding, error)
	Delete(ctx context.Context, bindingID string) error
}

// ProfileUseCase handles profile lifecycle business logic.
type ProfileUseCase struct {
	txManager   database.TxManager
	profileRepo ProfileRepository
	settings    SettingsRepository
	preferences PreferenceRepository
	keyRepo     KeyRepository
	bindingRepo BindingRepository
}

// NewProfileUseCase creates a new ProfileUseCase.
func NewProfileUseCase(
	txManager database.TxManager,
	profileRepo ProfileRepository,
	settings SettingsRepository,
	preferences PreferenceRepository,
	keyRepo KeyRepository,
	bindingRepo BindingRepository,
) *ProfileUseCase {
	return &ProfileUseCase{
		txManager:   txManager,
		profileRepo: profileRepo,
		settings:    settings,
		preferences: preferences,
		keyRepo:     keyRepo,
		bindingRepo: bindingRepo,
	}
}

func (uc *ProfileUseCase) validateCreateProfileInput(input CreateProfileInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("profile name is required"),
			appValidation.TrimmedLength{Min: 2, Max: 50},
		),
		validation.Field(&input.Color,
			validation.Required.Error("profile color is required"),
			appValidation.HexColor,
		),
		validation.Field(&input.Icon,
			validation.Required.Error("profile icon is required"),
			appValidation.NotBlank,
		),
	)
	return appValidation.WrapValidationError(err)
}

// InitializeDefaultProfiles seeds the two built-in profiles and the default
// settings record. It is idempotent: a non-empty profile collection is left
// untouched.
func (uc *ProfileUseCase) InitializeDefaultProfiles(ctx context.Context) error {
	count, err := uc.profileRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UnixMilli()

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		for _, profile := range domain.BuiltInProfiles(now) {
			if err := uc.profileRepo.Create(ctx, profile); err != nil {
				return err
			}
		}
		return uc.settings.Set(ctx, domain.DefaultSettings(domain.ProfileIDPersonal))
	})
}

// CreateProfile validates the input and persists a new user profile.
func (uc *ProfileUseCase) CreateProfile(ctx context.Context, input CreateProfileInput) (*domain.Profile, error) {
	if err := uc.validateCreateProfileInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	profile := &domain.Profile{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Name:      strings.TrimSpace(input.Name),
		Color:     input.Color,
		Icon:      input.Icon,
		CreatedAt: now,
		UpdatedAt: now,
		Metadata: domain.Metadata{
			LastUsed:    now,
			Description: strings.TrimSpace(input.Description),
		},
	}

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile merges the partial input onto the existing record and
// persists the result. Fields absent from the input keep their current
// values. Rename eligibility for built-ins is the caller's concern via
// CanRenameProfile; this operation does not re-check it.
func (uc *ProfileUseCase) UpdateProfile(
	ctx context.Context,
	profileID string,
	input UpdateProfileInput,
) (*domain.Profile, error) {
	profile, err := uc.profileRepo.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := validation.Validate(*input.Name,
			validation.Required.Error("profile name is required"),
			appValidation.TrimmedLength{Min: 2, Max: 50},
		); err != nil {
			return nil, appValidation.WrapValidationError(err)
		}
		profile.Name = strings.TrimSpace(*input.Name)
	}
	if input.Color != nil {
		if err := validation.Validate(*input.Color,
			validation.Required.Error("profile color is required"),
			appValidation.HexColor,
		); err != nil {
			return nil, appValidation.WrapValidationError(err)
		}
		profile.Color = *input.Color
	}
	if input.Icon != nil {
		if err := validation.Validate(*input.Icon,
			validation.Required.Error("profile icon is required"),
			appValidation.NotBlank,
		); err != nil {
			return nil, appValidation.WrapValidationError(err)
		}
		profile.Icon = *input.Icon
	}

	profile.UpdatedAt = time.Now().UnixMilli()

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteProfile removes a profile after checking eligibility, cascading the
// delete over the profile's keys and bindings before the profile row itself.
// The whole cascade commits as one transaction.
func (uc *ProfileUseCase) DeleteProfile(ctx context.Context, profileID string) error {
	profile, err := uc.profileRepo.Get(ctx, profileID)
	if err != nil {
		return err
	}

	total, err := uc.profileRepo.Count(ctx)
	if err != nil {
		return err
	}

	if err := domain.CanDeleteProfile(profile, total); err != nil {
		return err
	}

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		keys, err := uc.keyRepo.GetByProfile(ctx, profileID)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := uc.keyRepo.Delete(ctx, key.ID); err != nil {
				return err
			}
		}

		bindings, err := uc.bindingRepo.GetByProfile(ctx, profileID)
		if err != nil {
			return err
		}
		for _, binding := range bindings {
			if err := uc.bindingRepo.Delete(ctx, binding.ID); err != nil {
				return err
			}
		}

		return uc.profileRepo.Delete(ctx, profileID)
	})
}

// SetDefaultProfile atomically marks exactly the given profile as default.
func (uc *ProfileUseCase) SetDefaultProfile(ctx context.Context, profileID string) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		return uc.profileRepo.SetDefault(ctx, profileID)
	})
}

// GetDefaultProfile returns the profile flagged as default. When no profile
// carries the flag it falls back to the first profile, and to nil on an
// empty collection.
func (uc *ProfileUseCase) GetDefaultProfile(ctx context.Context) (*domain.Profile, error) {
	profiles, err := uc.profileRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	for _, profile := range profiles {
		if profile.IsDefault {
			return profile, nil
		}
	}
	return profiles[0], nil
}

// GetProfile retrieves a profile by its identifier.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, profileID string) (*domain.Profile, error) {
	return uc.profileRepo.Get(ctx, profileID)
}

// ListProfiles retrieves every profile.
func (uc *ProfileUseCase) ListProfiles(ctx context.Context) ([]*domain.Profile, error) {
	return uc.profileRepo.GetAll(ctx)
}

// GetSettings returns the persisted settings record, or the default shape
// when none has been written yet.
func (uc *ProfileUseCase) GetSettings(ctx context.Context) (domain.Settings, error) {
	settings, found, err := uc.settings.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	if !found {
		return domain.DefaultSettings(domain.ProfileIDPersonal), nil
	}
	return settings, nil
}

// UpdateSettings merges patch onto the current settings record and persists
// the merged result.
func (uc *ProfileUseCase) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	current, err := uc.GetSettings(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	merged := current.Merge(patch)
	if err := uc.settings.Set(ctx, merged); err != nil {
		return domain.Settings{}, err
	}
	return merged, nil
}

// SetDomainProfilePreference pins webDomain to profileID, overwriting any
// previous preference for the same domain.
func (uc *ProfileUseCase) SetDomainProfilePreference(ctx context.Context, webDomain, profileID string) error {
	if strings.TrimSpace(webDomain) == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "domain is required")
	}
	if _, err := uc.profileRepo.Get(ctx, profileID); err != nil {
		return err
	}

	return uc.preferences.Upsert(ctx, &domain.DomainPreference{
		ID:        domain.PreferenceID(webDomain),
		Domain:    webDomain,
		ProfileID: profileID,
		CreatedAt: time.Now().UnixMilli(),
	})
}

// GetDomainProfilePreference resolves the profile pinned to webDomain, or ""
// when no preference is recorded.
func (uc *ProfileUseCase) GetDomainProfilePreference(ctx context.Context, webDomain string) (string, error) {
	pref, err := uc.preferences.GetByDomain(ctx, webDomain)
	if err != nil {
		if apperrors.Is(err, domain.ErrPreferenceNotFound) {
			return "", nil
		}
		return "", err
	}
	return pref.ProfileID, nil
}

// UpdateProfileMetadata merges patch onto the profile's metadata block and
// bumps updatedAt. A missing profile is a deliberate no-op.
func (uc *ProfileUseCase) UpdateProfileMetadata(ctx context.Context, profileID string, patch MetadataPatch) error {
	profile, err := uc.profileRepo.Get(ctx, profileID)
	if err != nil {
		if apperrors.Is(err, domain.ErrProfileNotFound) {
			return nil
		}
		return err
	}

	if patch.KeyCount != nil {
		profile.Metadata.KeyCount = *patch.KeyCount
	}
	if patch.LastUsed != nil {
		profile.Metadata.LastUsed = *patch.LastUsed
	}
	if patch.Description != nil {
		profile.Metadata.Description = *patch.Description
	}
	profile.UpdatedAt = time.Now().UnixMilli()

	return uc.profileRepo.Update(ctx, profile)
}

// CanDeleteProfile reports whether the profile is eligible for deletion
// under the built-in, last-profile and key-ownership rules.
func (uc *ProfileUseCase) CanDeleteProfile(ctx context.Context, profileID string) error {
	profile, err := uc.profileRepo.Get(ctx, profileID)
	if err != nil {
		return err
	}

	total, err := uc.profileRepo.Count(ctx)
	if err != nil {
		return err
	}
	return domain.CanDeleteProfile(profile, total)
}

// CanRenameProfile reports whether the profile may be renamed.
func (uc *ProfileUseCase) CanRenameProfile(ctx context.Context, profileID string) error {
	profile, err := uc.profileRepo.Get(ctx, profileID)
	if err != nil {
		return err
	}
	return domain.CanRenameProfile(profile)
}
