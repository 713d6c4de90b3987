// Package repository implements SQLite persistence for profiles, the
// singleton settings record and per-domain profile preferences.
// All methods join an ambient transaction when one is present in the context.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aikey/vault/internal/database"
	apperrors "github.com/aikey/vault/internal/errors"
	profileDomain "github.com/aikey/vault/internal/profile/domain"
)

// querier resolves the executor for ctx, rejecting use before the storage
// layer has been initialized with an open database handle.
func querier(ctx context.Context, db *sql.DB) (database.Querier, error) {
	if db == nil {
		return nil, apperrors.ErrNotInitialized
	}
	return database.GetTx(ctx, db), nil
}

// ProfileRepository implements Profile persistence for the embedded database.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new Profile repository instance.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a new profile.
func (r *ProfileRepository) Create(ctx context.Context, profile *profileDomain.Profile) error {
	q, err := querier(ctx, r.db)
	if err != nil {
		return err
	}

	query := `INSERT INTO profiles (id, name, color, icon, is_default, is_built_in, created_at, updated_at, key_count, last_used, description)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = q.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.Name,
		profile.Color,
		profile.Icon,
		boolToInt(profile.IsDefault),
		boolToInt(profile.IsBuiltIn),
		profile.CreatedAt,
		profile.UpdatedAt,
		profile.Metadata.KeyCount,
		profile.Metadata.LastUsed,
		nullableString(profile.Metadata.Description),
	)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to create profile")
	}
	return nil
}

// Update rewrites the mutable fields of an existing profile record.
func (r *ProfileRepository) Update(ctx context.Context, profile *profileDomain.Profile) error {
	q, err := querier(ctx, r.db)
	if err != nil {
		return err
	}

	query := `UPDATE profiles
			  SET name = ?, color = ?, icon = ?, is_default = ?, updated_at = ?, key_count = ?, last_used = ?, description = ?
			  WHERE id = ?`

	result, err := q.ExecContext(
		ctx,
		query,
		profile.Name,
		profile.Color,
		profile.Icon,
		boolToInt(profile.IsDefault),
		profile.UpdatedAt,
		profile.Metadata.KeyCount,
		profile.Metadata.LastUsed,
		nullableString(profile.Metadata.Description),
		profile.ID,
	)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to update profile")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapStorage(err, "failed to update profile")
	}
	if rows == 0 {
		return profileDomain.ErrProfileNotFound
	}
	return nil
}

// Delete removes a profile by its identifier.
func (r *ProfileRepository) Delete(ctx context.Context, profileID string) error {
	q, err := querier(ctx, r.db)
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, profileID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete profile")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete profile")
	}
	if rows == 0 {
		return profileDomain.ErrProfileNotFound
	}
	return nil
}

// Get retrieves a profile by its identifier.
func (r *ProfileRepository) Get(ctx context.Context, profileID string) (*profileDomain.Profile, error) {
	q, err := querier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, name, color, icon, is_default, is_built_in, created_at, updated_at, key_count, last_used, description
			  FROM profiles WHERE id = ?`

	profile, err := scanProfile(q.QueryRowContext(ctx, query, profileID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, profileDomain.ErrProfileNotFound
		}
		return nil, apperrors.WrapStorage(err, "failed to get profile")
	}
	return profile, nil
}

// GetAll retrieves every profile ordered by creation time.
func (r *ProfileRepository) GetAll(ctx context.Context) ([]*profileDomain.Profile, error) {
	q, err := querier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, name, color, icon, is_default, is_built_in, created_at, updated_at, key_count, last_used, description
			  FROM profiles ORDER BY created_at, id`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.WrapStorage(err, "failed to list profiles")
	}
	defer rows.Close()

	var profiles []*profileDomain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, apperrors.WrapStorage(err, "failed to scan profile")
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err, "failed to iterate profiles")
	}
	return profiles, nil
}

// Count reports the total number of profiles.
func (r *ProfileRepository) Count(ctx context.Context) (int, error) {
	q, err := querier(ctx, r.db)
	if err != nil {
		return 0, err
	}

	var count int
	err = q.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to count profiles")
	}
	return count, nil
}

// SetDefault marks exactly the given profile as default and clears the flag
// on every other profile. Callers run it inside a transaction so readers
// never observe zero or two defaults.
func (r *ProfileRepository) SetDefault(ctx context.Context, profileID string) error {
	q, err := querier(ctx, r.db)
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `UPDATE profiles SET is_default = 1 WHERE id = ?`, profileID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to set default profile")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapStorage(err, "failed to set default profile")
	}
	if rows == 0 {
		return profileDomain.ErrProfileNotFound
	}

	_, err = q.ExecContext(ctx, `UPDATE profiles SET is_default = 0 WHERE id != ?`, profileID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to clear default flags")
	}
	return nil
}

func scanProfile(row rowScanner) (*profileDomain.Profile, error) {
	var profile profileDomain.Profile
	var isDefault, isBuiltIn int
	var description sql.NullString

	err := row.Scan(
		&profile.ID,
		&profile.Name,
		&profile.Color,
		&profile.Icon,
		&isDefault,
		&isBuiltIn,
		&profile.CreatedAt,
		&profile.UpdatedAt,
		&profile.Metadata.KeyCount,
		&profile.Metadata.LastUsed,
		&description,
	)
	if err != nil {
		return nil, err
	}

	profile.IsDefault = isDefault != 0
	profile.IsBuiltIn = isBuiltIn != 0
	profile.Metadata.Description = description.String
	return &profile, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// nullableString maps "" to NULL so optional text columns stay NULL-clean.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
