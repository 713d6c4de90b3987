package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoService "github.com/aikey/vault/internal/crypto/service"
	"github.com/aikey/vault/internal/database"
	apperrors "github.com/aikey/vault/internal/errors"
	profileDomain "github.com/aikey/vault/internal/profile/domain"
	profileRepository "github.com/aikey/vault/internal/profile/repository"
	profileUsecase "github.com/aikey/vault/internal/profile/usecase"
	"github.com/aikey/vault/internal/testutil"
	"github.com/aikey/vault/internal/vault/domain"
	vaultRepository "github.com/aikey/vault/internal/vault/repository"
)

type vaultFixture struct {
	uc       *KeyUseCase
	profiles profileUsecase.UseCase
	logs     *vaultRepository.UsageLogRepository
}

func setupVault(t *testing.T) *vaultFixture {
	t.Helper()

	db := testutil.SetupDB(t)
	ctx := context.Background()

	txManager := database.NewTxManager(db)
	keyRepo := vaultRepository.NewKeyRepository(db)
	bindingRepo := vaultRepository.NewBindingRepository(db)
	logRepo := vaultRepository.NewUsageLogRepository(db)
	metadataRepo := vaultRepository.NewMetadataRepository(db)

	profiles := profileUsecase.NewProfileUseCase(
		txManager,
		profileRepository.NewProfileRepository(db),
		profileRepository.NewSettingsRepository(db),
		profileRepository.NewPreferenceRepository(db),
		keyRepo,
		bindingRepo,
	)
	require.NoError(t, profiles.InitializeDefaultProfiles(ctx))

	encryptor := cryptoService.NewEncryptionService(
		cryptoService.DeviceIdentity{
			InstallationID: "test-install",
			ClientInfo:     "aikey-vault/test",
			Locale:         "en-US",
		},
		vaultRepository.NewMetadataSaltStore(metadataRepo),
	)
	require.NoError(t, encryptor.Initialize(ctx))

	uc := NewKeyUseCase(txManager, encryptor, keyRepo, bindingRepo, logRepo, metadataRepo, profiles)
	return &vaultFixture{uc: uc, profiles: profiles, logs: logRepo}
}

func TestKeyUseCase_AddKey(t *testing.T) {
	f := setupVault(t)
	ctx := context.Background()

	key, err := f.uc.AddKey(ctx, AddKeyInput{
		Plaintext: "sk-test-12345",
		Service:   domain.ServiceOpenAI,
		ProfileID: profileDomain.ProfileIDPersonal,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, key.ID)
	assert.NotEmpty(t, key.Ciphertext)
	assert.NotEmpty(t, key.IV)
	assert.NotEqual(t, "sk-test-12345", key.Ciphertext)
	assert.Equal(t, "OpenAI - Personal", key.Name)

	plaintext, err := f.uc.DecryptKey(ctx, key.ID)
	require.NoError(t, err)
	assert.Equal(t, "sk-test-12345", plaintext)
}

func TestKeyUseCase_AddKey_Validation(t *testing.T) {
	f := setupVault(t)
	ctx := context.Background()

	_, err := f.uc.AddKey(ctx, AddKeyInput{Plaintext: "sk-x", Service: "Imaginary"})
	assert.ErrorIs(t, err, domain.ErrInvalidService)

	_, err = f.uc.AddKey(ctx, AddKeyInput{Service: domain.ServiceOpenAI, ProfileID: profileDomain.ProfileIDPersonal})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	// No explicit profile and no current profile recorded.
	_, err = f.uc.AddKey(ctx, AddKeyInput{Plaintext: "sk-x", Service: domain.ServiceOpenAI})
	assert.ErrorIs(t, err, domain.ErrNoCurrentProfile)

	_, err = f.uc.AddKey(ctx, AddKeyInput{Plaintext: "sk-x", Service: domain.ServiceOpenAI, ProfileID: "missing"})
	assert.ErrorIs(t, err, profileDomain.ErrProfileNotFound)
}

func TestKeyUseCase_KeyCountTracking(t *testing.T) {
	f := setupVault(t)
	ctx := context.Background()

	created, err := f.profiles.CreateProfile(ctx, profileUsecase.CreateProfileInput{
		Name: "Research", Color: "#ff5722", Icon: "🔬",
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.SwitchProfile(ctx, created.ID))

	// Keys land on the current profile when none is given explicitly.
	keyA, err := f.uc.AddKey(ctx, AddKeyInput{Plaintext: "sk-a", Service: domain.ServiceOpenAI})
	require.NoError(t, err)
	assert.Equal(t, created.ID, keyA.ProfileID)

	profile, err := f.profiles.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.Metadata.KeyCount)

	_, err = f.uc.AddKey(ctx, AddKeyInput{Plaintext: "sk-b", Service: domain.ServiceAnthropic})
	require.NoError(t, err)

	profile, err = f.profiles.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.Metadata.KeyCount)

	require.NoError(t, f.uc.DeleteKey(ctx, keyA.ID))

	profile, err = f.profiles.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.Metadata.KeyCount)
}

func TestKeyUseCase_UpdateKey(t *testing.T) {
	f := setupVault(t)
	ctx := context.Background()

	key, err := f.uc.AddKey(ctx, AddKeyInput{
		Plaintext: "sk-test", Service: domain.ServiceGroq, ProfileID: profileDomain.ProfileIDPersonal,
	})
	require.NoError(t, err)

	name := "Groq - shared"
	tag := "team"
	updated, err := f.uc.UpdateKey(ctx, key.ID, UpdateKeyInput{Name: &name, Tag: &tag})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, tag, updated.Tag)
	assert.Equal(t, key.Ciphertext, updated.Ciphertext)

	blank := "  "
	_, err = f.uc.UpdateKey(ctx, key.ID, UpdateKeyInput{Name: &blank})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = f.uc.UpdateKey(ctx, "missing", UpdateKeyInput{Name: &name})
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestKeyUseCase_ListKeys(t *testing.T) {
	f := setupVault(t)
	ctx := context.Background()

	_, err := f.uc.AddKey(ctx, AddKeyInput{
		Plaintext: "sk-a", Service: domain.ServiceOpenAI, ProfileID: profileDomain.ProfileIDPersonal,
	})
	require.NoError(t, err)
	_, err = f.uc.AddKey(ctx, AddKeyInput{
		Plaintext: "sk-b", Service: domain.ServiceAnthropic, ProfileID: profileDomain.ProfileIDWork,
	})
	require.NoError(t, err)

	all, err := f.uc.ListKeys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	work, err := f.uc.ListKeys(ctx, profileDomain.ProfileIDWork)
	require.NoError(t, err)
	require.Len(t, work, 1)
	assert.Equal(t, domain.ServiceAnthropic, work[0].Service)
}

func TestKeyUseCase_SwitchAndCurrentProfile(t *testing.T) {
	f := setupVault(t)
	ctx := context.Background()

	current, err := f.uc.CurrentProfile(ctx)
	require.NoError(t, err)
	assert.Empty(t, current)

	before, err := f.profiles.GetProfile(ctx, profileDomain.ProfileIDWork)
	require.NoError(t, err)

	require.NoError(t, f.uc.SwitchProfile(ctx, profileDomain.ProfileIDWork))

	current, err = f.uc.CurrentProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, profileDomain.ProfileIDWork, current)

	after, err := f.profiles.GetProfile(ctx, profileDomain.ProfileIDWork)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, after.Metadata.LastUsed, before.Metadata.LastUsed)

	err = f.uc.SwitchProfile(ctx, "missing")
	assert.ErrorIs(t, err, profileDomain.ErrProfileNotFound)
}

func TestKeyUseCase_BindingsAndRecommendations(t *testing.T) {
	f := setupVault(t)
	ctx := context.Background()

	key, err := f.uc.AddKey(ctx, AddKeyInput{
		Plaintext: "sk-test", Service: domain.ServiceOpenAI, ProfileID: profileDomain.ProfileIDPersonal,
	})
	require.NoError(t, err)

	_, err = f.uc.RecordBinding(ctx, "chat.openai.com", profileDomain.ProfileIDPersonal, key.ID, domain.ServiceOpenAI)
	require.NoError(t, err)
	_, err = f.uc.RecordBinding(ctx, "chat.openai.com", profileDomain.ProfileIDWork, key.ID, domain.ServiceOpenAI)
	require.NoError(t, err)

	all, err := f.uc.SiteRecommendations(ctx, "chat.openai.com", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	personal, err := f.uc.SiteRecommendations(ctx, "chat.openai.com", profileDomain.ProfileIDPersonal)
	require.NoError(t, err)
	require.Len(t, personal, 1)
	assert.Equal(t, key.ID, personal[0].KeyID)

	_, err = f.uc.RecordBinding(ctx, "", profileDomain.ProfileIDPersonal, key.ID, domain.ServiceOpenAI)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = f.uc.RecordBinding(ctx, "claude.ai", profileDomain.ProfileIDPersonal, "missing", domain.ServiceAnthropic)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestKeyUseCase_LogUsageAndPurge(t *testing.T) {
	f := setupVault(t)
	ctx := context.Background()

	key, err := f.uc.AddKey(ctx, AddKeyInput{
		Plaintext: "sk-test", Service: domain.ServiceOpenAI, ProfileID: profileDomain.ProfileIDPersonal,
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.LogUsage(ctx, key.ID, "chat.openai.com", domain.ActionFill))
	require.NoError(t, f.uc.LogUsage(ctx, key.ID, "chat.openai.com", domain.ActionCopy))

	err = f.uc.LogUsage(ctx, key.ID, "chat.openai.com", "stash")
	assert.ErrorIs(t, err, domain.ErrInvalidAction)

	logs, err := f.logs.GetByKey(ctx, key.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, profileDomain.ProfileIDPersonal, logs[0].ProfileID)

	// Back-date one entry past the retention window.
	const day = 24 * time.Hour
	backdated := time.Now().Add(-40 * day).UnixMilli()
	require.NoError(t, f.logs.Create(ctx, &domain.UsageLog{
		ID: "old-entry", KeyID: key.ID, Domain: "chat.openai.com",
		ProfileID: profileDomain.ProfileIDPersonal, Timestamp: backdated, Action: domain.ActionFill,
	}))

	deleted, err := f.uc.PurgeLogs(ctx, 30*day)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	logs, err = f.logs.GetByKey(ctx, key.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestKeyUseCase_DecryptKey_NotFound(t *testing.T) {
	f := setupVault(t)

	_, err := f.uc.DecryptKey(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}
