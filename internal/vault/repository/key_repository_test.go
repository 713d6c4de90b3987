package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/aikey/vault/internal/errors"
	"github.com/aikey/vault/internal/testutil"
	vaultDomain "github.com/aikey/vault/internal/vault/domain"
)

func newTestKey(profileID string) *vaultDomain.EncryptedKey {
	return &vaultDomain.EncryptedKey{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Ciphertext: "Y2lwaGVydGV4dA==",
		IV:         "aXYtMTIzNDU2Nzg=",
		Service:    vaultDomain.ServiceOpenAI,
		Name:       "OpenAI - Personal",
		Tag:        "prod",
		ProfileID:  profileID,
		CreatedAt:  1700000000000,
		UpdatedAt:  1700000000000,
	}
}

func TestNewKeyRepository(t *testing.T) {
	db := testutil.SetupDB(t)

	repo := NewKeyRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &KeyRepository{}, repo)
}

func TestKeyRepository_Create(t *testing.T) {
	db := testutil.SetupDB(t)
	testutil.SeedProfile(t, db, "personal", "Personal")

	repo := NewKeyRepository(db)
	ctx := context.Background()

	key := newTestKey("personal")
	err := repo.Create(ctx, key)
	require.NoError(t, err)

	read, err := repo.Get(ctx, key.ID)
	require.NoError(t, err)

	assert.Equal(t, key.ID, read.ID)
	assert.Equal(t, key.Ciphertext, read.Ciphertext)
	assert.Equal(t, key.IV, read.IV)
	assert.Equal(t, key.Service, read.Service)
	assert.Equal(t, key.Name, read.Name)
	assert.Equal(t, key.Tag, read.Tag)
	assert.Equal(t, key.ProfileID, read.ProfileID)
	assert.Equal(t, key.CreatedAt, read.CreatedAt)
	assert.Equal(t, key.UpdatedAt, read.UpdatedAt)
}

func TestKeyRepository_Create_WithoutTag(t *testing.T) {
	db := testutil.SetupDB(t)
	testutil.SeedProfile(t, db, "personal", "Personal")

	repo := NewKeyRepository(db)
	ctx := context.Background()

	key := newTestKey("personal")
	key.Tag = ""
	require.NoError(t, repo.Create(ctx, key))

	// The optional tag column stays NULL rather than an empty string.
	var nullTags int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM keys WHERE id = ? AND tag IS NULL`, key.ID).Scan(&nullTags)
	require.NoError(t, err)
	assert.Equal(t, 1, nullTags)

	read, err := repo.Get(ctx, key.ID)
	require.NoError(t, err)
	assert.Empty(t, read.Tag)
}

func TestKeyRepository_Create_DuplicateID(t *testing.T) {
	db := testutil.SetupDB(t)
	testutil.SeedProfile(t, db, "personal", "Personal")

	repo := NewKeyRepository(db)
	ctx := context.Background()

	key := newTestKey("personal")
	require.NoError(t, repo.Create(ctx, key))

	err := repo.Create(ctx, key)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStorageFailure)
}

func TestKeyRepository_Update(t *testing.T) {
	db := testutil.SetupDB(t)
	testutil.SeedProfile(t, db, "personal", "Personal")

	repo := NewKeyRepository(db)
	ctx := context.Background()

	key := newTestKey("personal")
	require.NoError(t, repo.Create(ctx, key))

	key.Name = "OpenAI - Renamed"
	key.Tag = "staging"
	key.UpdatedAt = 1700000001000
	require.NoError(t, repo.Update(ctx, key))

	read, err := repo.Get(ctx, key.ID)
	require.NoError(t, err)
	assert.Equal(t, "OpenAI - Renamed", read.Name)
	assert.Equal(t, "staging", read.Tag)
	assert.Equal(t, int64(1700000001000), read.UpdatedAt)
	assert.Equal(t, key.CreatedAt, read.CreatedAt)
}

func TestKeyRepository_Update_NotFound(t *testing.T) {
	db := testutil.SetupDB(t)

	repo := NewKeyRepository(db)
	key := newTestKey("personal")

	err := repo.Update(context.Background(), key)
	require.Error(t, err)
	assert.ErrorIs(t, err, vaultDomain.ErrKeyNotFound)
}

func TestKeyRepository_Delete(t *testing.T) {
	db := testutil.SetupDB(t)
	testutil.SeedProfile(t, db, "personal", "Personal")

	repo := NewKeyRepository(db)
	ctx := context.Background()

	key := newTestKey("personal")
	require.NoError(t, repo.Create(ctx, key))

	require.NoError(t, repo.Delete(ctx, key.ID))

	_, err := repo.Get(ctx, key.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestKeyRepository_Get_NotFound(t *testing.T) {
	db := testutil.SetupDB(t)

	repo := NewKeyRepository(db)

	_, err := repo.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, vaultDomain.ErrKeyNotFound)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestKeyRepository_GetAll(t *testing.T) {
	db := testutil.SetupDB(t)
	testutil.SeedProfile(t, db, "personal", "Personal")
	testutil.SeedProfile(t, db, "work", "Work")

	repo := NewKeyRepository(db)
	ctx := context.Background()

	first := newTestKey("personal")
	second := newTestKey("work")
	second.CreatedAt = first.CreatedAt + 1000
	second.Service = vaultDomain.ServiceAnthropic
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	keys, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, first.ID, keys[0].ID)
	assert.Equal(t, second.ID, keys[1].ID)
}

func TestKeyRepository_GetByProfile(t *testing.T) {
	db := testutil.SetupDB(t)
	testutil.SeedProfile(t, db, "personal", "Personal")
	testutil.SeedProfile(t, db, "work", "Work")

	repo := NewKeyRepository(db)
	ctx := context.Background()

	personal := newTestKey("personal")
	work := newTestKey("work")
	require.NoError(t, repo.Create(ctx, personal))
	require.NoError(t, repo.Create(ctx, work))

	keys, err := repo.GetByProfile(ctx, "personal")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, personal.ID, keys[0].ID)

	keys, err = repo.GetByProfile(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestKeyRepository_NilDB(t *testing.T) {
	repo := NewKeyRepository(nil)
	ctx := context.Background()

	_, err := repo.Get(ctx, "any")
	assert.ErrorIs(t, err, apperrors.ErrNotInitialized)

	err = repo.Create(ctx, newTestKey("personal"))
	assert.ErrorIs(t, err, apperrors.ErrNotInitialized)
}
