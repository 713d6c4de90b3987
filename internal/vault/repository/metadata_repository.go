package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	apperrors "github.com/aikey/vault/internal/errors"
)

// MetadataRepository stores small JSON-encoded values under string keys.
// It backs the encryption salt, the current-profile pointer and other
// vault bookkeeping.
type MetadataRepository struct {
	db *sql.DB
}

// NewMetadataRepository creates a new metadata repository instance.
func NewMetadataRepository(db *sql.DB) *MetadataRepository {
	return &MetadataRepository{db: db}
}

// Set stores value under key, replacing any previous value. The value is
// JSON-encoded before being written.
func (r *MetadataRepository) Set(ctx context.Context, key string, value any) error {
	q, err := querier(ctx, r.db)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "failed to encode metadata value for %q", key)
	}

	query := `INSERT INTO metadata (key, value) VALUES (?, ?)
			  ON CONFLICT (key) DO UPDATE SET value = excluded.value`

	_, err = q.ExecContext(ctx, query, key, string(encoded))
	if err != nil {
		return apperrors.WrapStorage(err, "failed to set metadata")
	}
	return nil
}

// Get loads the value stored under key into out, which must be a pointer.
// It reports whether the key was present.
func (r *MetadataRepository) Get(ctx context.Context, key string, out any) (bool, error) {
	q, err := querier(ctx, r.db)
	if err != nil {
		return false, err
	}

	var raw string
	err = q.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.WrapStorage(err, "failed to get metadata")
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, apperrors.Wrapf(apperrors.ErrInvalidInput, "failed to decode metadata value for %q", key)
	}
	return true, nil
}

// MetadataSaltStore adapts the metadata repository to the string key-value
// contract the encryption service persists its salt through.
type MetadataSaltStore struct {
	repo *MetadataRepository
}

// NewMetadataSaltStore creates a salt store backed by the metadata repository.
func NewMetadataSaltStore(repo *MetadataRepository) *MetadataSaltStore {
	return &MetadataSaltStore{repo: repo}
}

// Get reports the value stored under key, if any.
func (s *MetadataSaltStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	found, err := s.repo.Get(ctx, key, &value)
	if err != nil {
		return "", false, err
	}
	return value, found, nil
}

// Set stores value under key, overwriting any previous value.
func (s *MetadataSaltStore) Set(ctx context.Context, key string, value string) error {
	return s.repo.Set(ctx, key, value)
}

// Delete removes the value stored under key. Missing keys are not an error.
func (r *MetadataRepository) Delete(ctx context.Context, key string) error {
	q, err := querier(ctx, r.db)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete metadata")
	}
	return nil
}
