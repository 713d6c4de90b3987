package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/aikey/vault/internal/errors"
	profileDomain "github.com/aikey/vault/internal/profile/domain"
	"github.com/aikey/vault/internal/testutil"
)

func newTestProfile(name string) *profileDomain.Profile {
	return &profileDomain.Profile{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Name:      name,
		Color:     "#1976d2",
		Icon:      "🔑",
		CreatedAt: 1700000000000,
		UpdatedAt: 1700000000000,
		Metadata:  profileDomain.Metadata{LastUsed: 1700000000000},
	}
}

func TestProfileRepository_Create(t *testing.T) {
	db := testutil.SetupDB(t)

	repo := NewProfileRepository(db)
	ctx := context.Background()

	profile := newTestProfile("Research")
	profile.Metadata.Description = "keys for paper experiments"
	require.NoError(t, repo.Create(ctx, profile))

	read, err := repo.Get(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.Name, read.Name)
	assert.Equal(t, profile.Color, read.Color)
	assert.Equal(t, profile.Icon, read.Icon)
	assert.False(t, read.IsDefault)
	assert.False(t, read.IsBuiltIn)
	assert.Equal(t, profile.Metadata, read.Metadata)
}

func TestProfileRepository_Create_DuplicateID(t *testing.T) {
	db := testutil.SetupDB(t)

	repo := NewProfileRepository(db)
	ctx := context.Background()

	profile := newTestProfile("Research")
	require.NoError(t, repo.Create(ctx, profile))

	err := repo.Create(ctx, profile)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStorageFailure)
}

func TestProfileRepository_Update(t *testing.T) {
	db := testutil.SetupDB(t)

	repo := NewProfileRepository(db)
	ctx := context.Background()

	profile := newTestProfile("Research")
	require.NoError(t, repo.Create(ctx, profile))

	profile.Name = "Research (archived)"
	profile.Metadata.KeyCount = 3
	profile.UpdatedAt = 1700000001000
	require.NoError(t, repo.Update(ctx, profile))

	read, err := repo.Get(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Research (archived)", read.Name)
	assert.Equal(t, 3, read.Metadata.KeyCount)
	assert.Equal(t, int64(1700000001000), read.UpdatedAt)
}

func TestProfileRepository_Update_NotFound(t *testing.T) {
	db := testutil.SetupDB(t)

	repo := NewProfileRepository(db)

	err := repo.Update(context.Background(), newTestProfile("Ghost"))
	assert.ErrorIs(t, err, profileDomain.ErrProfileNotFound)
}

func TestProfileRepository_Delete(t *testing.T) {
	db := testutil.SetupDB(t)

	repo := NewProfileRepository(db)
	ctx := context.Background()

	profile := newTestProfile("Research")
	require.NoError(t, repo.Create(ctx, profile))
	require.NoError(t, repo.Delete(ctx, profile.ID))

	_, err := repo.Get(ctx, profile.ID)
	assert.ErrorIs(t, err, profileDomain.ErrProfileNotFound)

	err = repo.Delete(ctx, profile.ID)
	assert.ErrorIs(t, err, profileDomain.ErrProfileNotFound)
}

func TestProfileRepository_GetAllAndCount(t *testing.T) {
	db := testutil.SetupDB(t)

	repo := NewProfileRepository(db)
	ctx := context.Background()

	first := newTestProfile("First")
	second := newTestProfile("Second")
	second.CreatedAt = first.CreatedAt + 1000
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	profiles, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, first.ID, profiles[0].ID)
	assert.Equal(t, second.ID, profiles[1].ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestProfileRepository_SetDefault(t *testing.T) {
	db := testutil.SetupDB(t)

	repo := NewProfileRepository(db)
	ctx := context.Background()

	first := newTestProfile("First")
	first.IsDefault = true
	second := newTestProfile("Second")
	third := newTestProfile("Third")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, third))

	require.NoError(t, repo.SetDefault(ctx, second.ID))

	profiles, err := repo.GetAll(ctx)
	require.NoError(t, err)

	var defaults []string
	for _, p := range profiles {
		if p.IsDefault {
			defaults = append(defaults, p.ID)
		}
	}
	assert.Equal(t, []string{second.ID}, defaults)
}

func TestProfileRepository_SetDefault_NotFound(t *testing.T) {
	db := testutil.SetupDB(t)

	repo := NewProfileRepository(db)

	err := repo.SetDefault(context.Background(), "missing")
	assert.ErrorIs(t, err, profileDomain.ErrProfileNotFound)
}

func TestProfileRepository_NilDB(t *testing.T) {
	repo := NewProfileRepository(nil)

	_, err := repo.Get(context.Background(), "any")
	assert.ErrorIs(t, err, apperrors.ErrNotInitialized)
}
