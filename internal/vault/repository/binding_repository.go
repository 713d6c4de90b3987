package repository

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/aikey/vault/internal/errors"
	vaultDomain "github.com/aikey/vault/internal/vault/domain"
)

// BindingRepository implements SiteBinding persistence for the embedded database.
type BindingRepository struct {
	db *sql.DB
}

// NewBindingRepository creates a new SiteBinding repository instance.
func NewBindingRepository(db *sql.DB) *BindingRepository {
	return &BindingRepository{db: db}
}

// Create inserts a new site binding. Duplicates for the same
// domain/profile/key triple are legal and accumulate.
func (r *BindingRepository) Create(ctx context.Context, binding *vaultDomain.SiteBinding) error {
	q, err := querier(ctx, r.db)
	if err != nil {
		return err
	}

	query := `INSERT INTO bindings (id, domain, profile_id, key_id, service, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = q.ExecContext(
		ctx,
		query,
		binding.ID,
		binding.Domain,
		binding.ProfileID,
		binding.KeyID,
		string(binding.Service),
		binding.CreatedAt,
	)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to create binding")
	}
	return nil
}

// Delete removes a binding by its identifier.
func (r *BindingRepository) Delete(ctx context.Context, bindingID string) error {
	q, err := querier(ctx, r.db)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx, `DELETE FROM bindings WHERE id = ?`, bindingID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete binding")
	}
	return nil
}

// Get retrieves a binding by its identifier.
func (r *BindingRepository) Get(ctx context.Context, bindingID string) (*vaultDomain.SiteBinding, error) {
	q, err := querier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, domain, profile_id, key_id, service, created_at
			  FROM bindings WHERE id = ?`

	binding, err := scanBinding(q.QueryRowContext(ctx, query, bindingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vaultDomain.ErrBindingNotFound
		}
		return nil, apperrors.WrapStorage(err, "failed to get binding")
	}
	return binding, nil
}

// GetAll retrieves every binding ordered by creation time.
func (r *BindingRepository) GetAll(ctx context.Context) ([]*vaultDomain.SiteBinding, error) {
	return r.list(ctx, `SELECT id, domain, profile_id, key_id, service, created_at
						FROM bindings ORDER BY created_at, id`)
}

// GetByDomain retrieves every binding recorded for the given domain.
func (r *BindingRepository) GetByDomain(ctx context.Context, domain string) ([]*vaultDomain.SiteBinding, error) {
	return r.list(ctx, `SELECT id, domain, profile_id, key_id, service, created_at
						FROM bindings WHERE domain = ? ORDER BY created_at, id`, domain)
}

// GetByDomainAndProfile retrieves the bindings for a domain scoped to one profile.
func (r *BindingRepository) GetByDomainAndProfile(
	ctx context.Context,
	domain string,
	profileID string,
) ([]*vaultDomain.SiteBinding, error) {
	return r.list(ctx, `SELECT id, domain, profile_id, key_id, service, created_at
						FROM bindings WHERE domain = ? AND profile_id = ? ORDER BY created_at, id`,
		domain, profileID)
}

// GetByProfile retrieves every binding owned by the given profile.
func (r *BindingRepository) GetByProfile(ctx context.Context, profileID string) ([]*vaultDomain.SiteBinding, error) {
	return r.list(ctx, `SELECT id, domain, profile_id, key_id, service, created_at
						FROM bindings WHERE profile_id = ? ORDER BY created_at, id`, profileID)
}

func (r *BindingRepository) list(ctx context.Context, query string, args ...any) ([]*vaultDomain.SiteBinding, error) {
	q, err := querier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.WrapStorage(err, "failed to list bindings")
	}
	defer rows.Close()

	var bindings []*vaultDomain.SiteBinding
	for rows.Next() {
		binding, err := scanBinding(rows)
		if err != nil {
			return nil, apperrors.WrapStorage(err, "failed to scan binding")
		}
		bindings = append(bindings, binding)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err, "failed to iterate bindings")
	}
	return bindings, nil
}

func scanBinding(row rowScanner) (*vaultDomain.SiteBinding, error) {
	var binding vaultDomain.SiteBinding
	var service string

	err := row.Scan(
		&binding.ID,
		&binding.Domain,
		&binding.ProfileID,
		&binding.KeyID,
		&service,
		&binding.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	binding.Service = vaultDomain.ServiceType(service)
	return &binding, nil
}
