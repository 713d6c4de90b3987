package repository

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/aikey/vault/internal/errors"
	profileDomain "github.com/aikey/vault/internal/profile/domain"
)

// PreferenceRepository persists per-domain profile preferences. The
// deterministic record id makes repeated writes for a domain overwrite the
// previous preference.
type PreferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new preference repository instance.
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Upsert stores the preference, overwriting any existing record for the
// same domain.
func (r *PreferenceRepository) Upsert(ctx context.Context, pref *profileDomain.DomainPreference) error {
	q, err := querier(ctx, r.db)
	if err != nil {
		return err
	}

	query := `INSERT INTO domain_profile_preferences (id, domain, profile_id, created_at)
			  VALUES (?, ?, ?, ?)
			  ON CONFLICT (id) DO UPDATE SET profile_id = excluded.profile_id`

	_, err = q.ExecContext(ctx, query, pref.ID, pref.Domain, pref.ProfileID, pref.CreatedAt)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to upsert domain preference")
	}
	return nil
}

// GetByDomain resolves the preference recorded for a domain via its unique
// index.
func (r *PreferenceRepository) GetByDomain(ctx context.Context, domain string) (*profileDomain.DomainPreference, error) {
	q, err := querier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, domain, profile_id, created_at
			  FROM domain_profile_preferences WHERE domain = ?`

	var pref profileDomain.DomainPreference
	err = q.QueryRowContext(ctx, query, domain).Scan(
		&pref.ID,
		&pref.Domain,
		&pref.ProfileID,
		&pref.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, profileDomain.ErrPreferenceNotFound
	}
	if err != nil {
		return nil, apperrors.WrapStorage(err, "failed to get domain preference")
	}
	return &pref, nil
}

// Delete removes the preference recorded for a domain. Missing domains are
// not an error.
func (r *PreferenceRepository) Delete(ctx context.Context, domain string) error {
	q, err := querier(ctx, r.db)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx, `DELETE FROM domain_profile_preferences WHERE domain = ?`, domain)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete domain preference")
	}
	return nil
}
