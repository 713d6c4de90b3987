package repository

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/aikey/vault/internal/errors"
	vaultDomain "github.com/aikey/vault/internal/vault/domain"
)

// KeyRepository implements EncryptedKey persistence for the embedded database.
type KeyRepository struct {
	db *sql.DB
}

// NewKeyRepository creates a new EncryptedKey repository instance.
func NewKeyRepository(db *sql.DB) *KeyRepository {
	return &KeyRepository{db: db}
}

// Create inserts a new encrypted key.
func (r *KeyRepository) Create(ctx context.Context, key *vaultDomain.EncryptedKey) error {
	q, err := querier(ctx, r.db)
	if err != nil {
		return err
	}

	query := `INSERT INTO keys (id, ciphertext, iv, service, name, tag, profile_id, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = q.ExecContext(
		ctx,
		query,
		key.ID,
		key.Ciphertext,
		key.IV,
		string(key.Service),
		key.Name,
		nullableString(key.Tag),
		key.ProfileID,
		key.CreatedAt,
		key.UpdatedAt,
	)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to create key")
	}
	return nil
}

// Update rewrites the mutable fields of an existing key record.
func (r *KeyRepository) Update(ctx context.Context, key *vaultDomain.EncryptedKey) error {
	q, err := querier(ctx, r.db)
	if err != nil {
		return err
	}

	query := `UPDATE keys
			  SET ciphertext = ?, iv = ?, service = ?, name = ?, tag = ?, profile_id = ?, updated_at = ?
			  WHERE id = ?`

	result, err := q.ExecContext(
		ctx,
		query,
		key.Ciphertext,
		key.IV,
		string(key.Service),
		key.Name,
		nullableString(key.Tag),
		key.ProfileID,
		key.UpdatedAt,
		key.ID,
	)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to update key")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapStorage(err, "failed to update key")
	}
	if rows == 0 {
		return vaultDomain.ErrKeyNotFound
	}
	return nil
}

// Delete removes a key by its identifier.
func (r *KeyRepository) Delete(ctx context.Context, keyID string) error {
	q, err := querier(ctx, r.db)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx, `DELETE FROM keys WHERE id = ?`, keyID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete key")
	}
	return nil
}

// Get retrieves a key by its identifier.
func (r *KeyRepository) Get(ctx context.Context, keyID string) (*vaultDomain.EncryptedKey, error) {
	q, err := querier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, ciphertext, iv, service, name, tag, profile_id, created_at, updated_at
			  FROM keys WHERE id = ?`

	key, err := scanKey(q.QueryRowContext(ctx, query, keyID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vaultDomain.ErrKeyNotFound
		}
		return nil, apperrors.WrapStorage(err, "failed to get key")
	}
	return key, nil
}

// GetAll retrieves every stored key ordered by creation time.
func (r *KeyRepository) GetAll(ctx context.Context) ([]*vaultDomain.EncryptedKey, error) {
	q, err := querier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, ciphertext, iv, service, name, tag, profile_id, created_at, updated_at
			  FROM keys ORDER BY created_at, id`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.WrapStorage(err, "failed to list keys")
	}
	defer rows.Close()

	return collectKeys(rows)
}

// GetByProfile retrieves every key owned by the given profile.
func (r *KeyRepository) GetByProfile(ctx context.Context, profileID string) ([]*vaultDomain.EncryptedKey, error) {
	q, err := querier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, ciphertext, iv, service, name, tag, profile_id, created_at, updated_at
			  FROM keys WHERE profile_id = ? ORDER BY created_at, id`

	rows, err := q.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, apperrors.WrapStorage(err, "failed to list keys by profile")
	}
	defer rows.Close()

	return collectKeys(rows)
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanKey(row rowScanner) (*vaultDomain.EncryptedKey, error) {
	var key vaultDomain.EncryptedKey
	var service string
	var tag sql.NullString

	err := row.Scan(
		&key.ID,
		&key.Ciphertext,
		&key.IV,
		&service,
		&key.Name,
		&tag,
		&key.ProfileID,
		&key.CreatedAt,
		&key.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	key.Service = vaultDomain.ServiceType(service)
	key.Tag = tag.String
	return &key, nil
}

func collectKeys(rows *sql.Rows) ([]*vaultDomain.EncryptedKey, error) {
	var keys []*vaultDomain.EncryptedKey
	for rows.Next() {
		key, err := scanKey(rows)
		if err != nil {
			return nil, apperrors.WrapStorage(err, "failed to scan key")
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err, "failed to iterate keys")
	}
	return keys, nil
}

// nullableString maps "" to NULL so optional text columns stay NULL-clean.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
