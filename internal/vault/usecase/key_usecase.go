// Package usecase implements the vault orchestration logic: key CRUD with
// encryption at rest, profile switching, site bindings, usage logging and
// the retention sweep.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	cryptoService "github.com/aikey/vault/internal/crypto/service"
	"github.com/aikey/vault/internal/database"
	apperrors "github.com/aikey/vault/internal/errors"
	profileUsecase "github.com/aikey/vault/internal/profile/usecase"
	"github.com/aikey/vault/internal/vault/domain"
)

// currentProfileKey is the metadata key holding the active profile id.
const currentProfileKey = "current_profile"

// AddKeyInput contains the input data for storing a new key.
type AddKeyInput struct {
	Plaintext string             `json:"plaintext"`
	Service   domain.ServiceType `json:"service"`
	Name      string             `json:"name"`
	Tag       string             `json:"tag"`
	ProfileID string             `json:"profileId"`
}

// UpdateKeyInput is a partial key update. Nil fields are left untouched.
type UpdateKeyInput struct {
	Name *string `json:"name"`
	Tag  *string `json:"tag"`
}

// UseCase defines the interface for vault orchestration operations.
type UseCase interface {
	AddKey(ctx context.Context, input AddKeyInput) (*domain.EncryptedKey, error)
	UpdateKey(ctx context.Context, keyID string, input UpdateKeyInput) (*domain.EncryptedKey, error)
	DeleteKey(ctx context.Context, keyID string) error
	GetKey(ctx context.Context, keyID string) (*domain.EncryptedKey, error)
	ListKeys(ctx context.Context, profileID string) ([]*domain.EncryptedKey, error)
	DecryptKey(ctx context.Context, keyID string) (string, error)
	SwitchProfile(ctx context.Context, profileID string) error
	CurrentProfile(ctx context.Context) (string, error)
	RecordBinding(ctx context.Context, webDomain, profileID, keyID string, service domain.ServiceType) (*domain.SiteBinding, error)
	SiteRecommendations(ctx context.Context, webDomain, profileID string) ([]*domain.SiteBinding, error)
	LogUsage(ctx context.Context, keyID, webDomain string, action domain.UsageAction) error
	PurgeLogs(ctx context.Context, olderThan time.Duration) (int64, error)
}

// KeyRepository interface defines key repository operations.
type KeyRepository interface {
	Create(ctx context.Context, key *domain.EncryptedKey) error
	Update(ctx context.Context, key *domain.EncryptedKey) error
	Delete(ctx context.Context, keyID string) error
	Get(ctx context.Context, keyID string) (*domain.EncryptedKey, error)
	GetAll(ctx context.Context) ([]*domain.EncryptedKey, error)
	GetByProfile(ctx context.Context, profileID string) ([]*domain.EncryptedKey, error)
}

// BindingRepository interface defines binding repository operations.
type BindingRepository interface {
	Create(ctx context.Context, binding *domain.SiteBinding) error
	GetByDomain(ctx context.Context, webDomain string) ([]*domain.SiteBinding, error)
	GetByDomainAndProfile(ctx context.Context, webDomain, profileID string) ([]*domain.SiteBinding, error)
}

// UsageLogRepository interface defines usage log repository operations.
type UsageLogRepository interface {
	Create(ctx context.Context, log *domain.UsageLog) error
	DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error)
}

// MetadataRepository interface defines metadata repository operations.
type MetadataRepository interface {
	Set(ctx context.Context, key string, value any) error
	Get(ctx context.Context, key string, out any) (bool, error)
}

// KeyUseCase handles vault orchestration business logic.
type KeyUseCase struct {
	txManager    database.TxManager
	encryptor    cryptoService.Encryptor
	keyRepo      KeyRepository
	bindingRepo  BindingRepository
	usageLogRepo UsageLogRepository
	metadataRepo MetadataRepository
	profiles     profileUsecase.UseCase
}

// NewKeyUseCase creates a new KeyUseCase.
func NewKeyUseCase(
	txManager database.TxManager,
	encryptor cryptoService.Encryptor,
	keyRepo KeyRepository,
	bindingRepo BindingRepository,
	usageLogRepo UsageLogRepository,
	metadataRepo MetadataRepository,
	profiles profileUsecase.UseCase,
) *KeyUseCase {
	return &KeyUseCase{
		txManager:    txManager,
		encryptor:    encryptor,
		keyRepo:      keyRepo,
		bindingRepo:  bindingRepo,
		usageLogRepo: usageLogRepo,
		metadataRepo: metadataRepo,
		profiles:     profiles,
	}
}

// AddKey encrypts the plaintext and stores the key under the target profile,
// incrementing the profile's key count in the same transaction. When no
// profile is given the current active profile is used.
func (uc *KeyUseCase) AddKey(ctx context.Context, input AddKeyInput) (*domain.EncryptedKey, error) {
	if !input.Service.Valid() {
		return nil, domain.ErrInvalidService
	}
	if strings.TrimSpace(input.Plaintext) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "key value is required")
	}

	profileID := input.ProfileID
	if profileID == "" {
		current, err := uc.CurrentProfile(ctx)
		if err != nil {
			return nil, err
		}
		if current == "" {
			return nil, domain.ErrNoCurrentProfile
		}
		profileID = current
	}

	profile, err := uc.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	payload, err := uc.encryptor.Encrypt(input.Plaintext)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = string(input.Service) + " - " + profile.Name
	}

	now := time.Now().UnixMilli()
	key := &domain.EncryptedKey{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Ciphertext: payload.Ciphertext,
		IV:         payload.IV,
		Service:    input.Service,
		Name:       name,
		Tag:        strings.TrimSpace(input.Tag),
		ProfileID:  profileID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.keyRepo.Create(ctx, key); err != nil {
			return err
		}
		keyCount := profile.Metadata.KeyCount + 1
		return uc.profiles.UpdateProfileMetadata(ctx, profileID, profileUsecase.MetadataPatch{
			KeyCount: &keyCount,
		})
	})
	if err != nil {
		return nil, err
	}
	return key, nil
}

// UpdateKey merges the partial input onto the stored key record. Ciphertext
// and ownership never change through this operation.
func (uc *KeyUseCase) UpdateKey(ctx context.Context, keyID string, input UpdateKeyInput) (*domain.EncryptedKey, error) {
	key, err := uc.keyRepo.Get(ctx, keyID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "key name is required")
		}
		key.Name = name
	}
	if input.Tag != nil {
		key.Tag = strings.TrimSpace(*input.Tag)
	}
	key.UpdatedAt = time.Now().UnixMilli()

	if err := uc.keyRepo.Update(ctx, key); err != nil {
		return nil, err
	}
	return key, nil
}

// DeleteKey removes a key and decrements the owning profile's key count in
// the same transaction.
func (uc *KeyUseCase) DeleteKey(ctx context.Context, keyID string) error {
	key, err := uc.keyRepo.Get(ctx, keyID)
	if err != nil {
		return err
	}

	profile, err := uc.profiles.GetProfile(ctx, key.ProfileID)
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.keyRepo.Delete(ctx, keyID); err != nil {
			return err
		}
		if profile == nil {
			return nil
		}
		keyCount := profile.Metadata.KeyCount - 1
		if keyCount < 0 {
			keyCount = 0
		}
		return uc.profiles.UpdateProfileMetadata(ctx, key.ProfileID, profileUsecase.MetadataPatch{
			KeyCount: &keyCount,
		})
	})
}

// GetKey retrieves a stored key record without decrypting it.
func (uc *KeyUseCase) GetKey(ctx context.Context, keyID string) (*domain.EncryptedKey, error) {
	return uc.keyRepo.Get(ctx, keyID)
}

// ListKeys retrieves stored keys, optionally filtered to one profile.
func (uc *KeyUseCase) ListKeys(ctx context.Context, profileID string) ([]*domain.EncryptedKey, error) {
	if profileID == "" {
		return uc.keyRepo.GetAll(ctx)
	}
	return uc.keyRepo.GetByProfile(ctx, profileID)
}

// DecryptKey opens the stored ciphertext and returns the plaintext secret.
func (uc *KeyUseCase) DecryptKey(ctx context.Context, keyID string) (string, error) {
	key, err := uc.keyRepo.Get(ctx, keyID)
	if err != nil {
		return "", err
	}
	return uc.encryptor.Decrypt(key.Ciphertext, key.IV)
}

// SwitchProfile records profileID as the active profile and bumps its
// lastUsed timestamp.
func (uc *KeyUseCase) SwitchProfile(ctx context.Context, profileID string) error {
	if _, err := uc.profiles.GetProfile(ctx, profileID); err != nil {
		return err
	}

	if err := uc.metadataRepo.Set(ctx, currentProfileKey, profileID); err != nil {
		return err
	}

	lastUsed := time.Now().UnixMilli()
	return uc.profiles.UpdateProfileMetadata(ctx, profileID, profileUsecase.MetadataPatch{
		LastUsed: &lastUsed,
	})
}

// CurrentProfile returns the active profile id, or "" when none has been
// recorded yet.
func (uc *KeyUseCase) CurrentProfile(ctx context.Context) (string, error) {
	var profileID string
	found, err := uc.metadataRepo.Get(ctx, currentProfileKey, &profileID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", nil
	}
	return profileID, nil
}

// RecordBinding stores an observed domain/profile/key association. Repeated
// observations accumulate.
func (uc *KeyUseCase) RecordBinding(
	ctx context.Context,
	webDomain, profileID, keyID string,
	service domain.ServiceType,
) (*domain.SiteBinding, error) {
	if strings.TrimSpace(webDomain) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "domain is required")
	}
	if !service.Valid() {
		return nil, domain.ErrInvalidService
	}
	if _, err := uc.keyRepo.Get(ctx, keyID); err != nil {
		return nil, err
	}

	binding := &domain.SiteBinding{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Domain:    webDomain,
		ProfileID: profileID,
		KeyID:     keyID,
		Service:   service,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := uc.bindingRepo.Create(ctx, binding); err != nil {
		return nil, err
	}
	return binding, nil
}

// SiteRecommendations returns the bindings recorded for a domain, optionally
// scoped to one profile, as fill candidates.
func (uc *KeyUseCase) SiteRecommendations(ctx context.Context, webDomain, profileID string) ([]*domain.SiteBinding, error) {
	if profileID == "" {
		return uc.bindingRepo.GetByDomain(ctx, webDomain)
	}
	return uc.bindingRepo.GetByDomainAndProfile(ctx, webDomain, profileID)
}

// LogUsage appends an audit record of a fill or copy of keyID on webDomain.
func (uc *KeyUseCase) LogUsage(ctx context.Context, keyID, webDomain string, action domain.UsageAction) error {
	if !action.Valid() {
		return domain.ErrInvalidAction
	}

	key, err := uc.keyRepo.Get(ctx, keyID)
	if err != nil {
		return err
	}

	return uc.usageLogRepo.Create(ctx, &domain.UsageLog{
		ID:        uuid.Must(uuid.NewV7()).String(),
		KeyID:     key.ID,
		Domain:    webDomain,
		ProfileID: key.ProfileID,
		Timestamp: time.Now().UnixMilli(),
		Action:    action,
	})
}

// PurgeLogs removes usage log entries older than the given retention window
// and reports how many were swept.
func (uc *KeyUseCase) PurgeLogs(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UnixMilli()
	return uc.usageLogRepo.DeleteOlderThan(ctx, cutoff)
}
