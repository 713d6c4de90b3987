package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	apperrors "github.com/aikey/vault/internal/errors"
	profileDomain "github.com/aikey/vault/internal/profile/domain"
)

// settingsKey is the fixed row key of the singleton settings record.
const settingsKey = "profile_settings"

// SettingsRepository persists the singleton profile settings record as a
// JSON value in the settings table.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new settings repository instance.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get loads the settings record. It reports whether a record was present.
func (r *SettingsRepository) Get(ctx context.Context) (profileDomain.Settings, bool, error) {
	var settings profileDomain.Settings

	q, err := querier(ctx, r.db)
	if err != nil {
		return settings, false, err
	}

	var raw string
	err = q.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, settingsKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return settings, false, nil
	}
	if err != nil {
		return settings, false, apperrors.WrapStorage(err, "failed to get settings")
	}

	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return settings, false, apperrors.Wrap(err, "failed to decode settings")
	}
	return settings, true, nil
}

// Set stores the settings record, replacing any previous value.
func (r *SettingsRepository) Set(ctx context.Context, settings profileDomain.Settings) error {
	q, err := querier(ctx, r.db)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(settings)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode settings")
	}

	query := `INSERT INTO settings (key, value) VALUES (?, ?)
			  ON CONFLICT (key) DO UPDATE SET value = excluded.value`

	_, err = q.ExecContext(ctx, query, settingsKey, string(encoded))
	if err != nil {
		return apperrors.WrapStorage(err, "failed to set settings")
	}
	return nil
}
