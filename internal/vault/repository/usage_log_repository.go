package repository

import (
	"context"
	"database/sql"

	apperrors "github.com/aikey/vault/internal/errors"
	vaultDomain "github.com/aikey/vault/internal/vault/domain"
)

// UsageLogRepository implements UsageLog persistence for the embedded database.
type UsageLogRepository struct {
	db *sql.DB
}

// NewUsageLogRepository creates a new UsageLog repository instance.
func NewUsageLogRepository(db *sql.DB) *UsageLogRepository {
	return &UsageLogRepository{db: db}
}

// Create appends a usage log entry.
func (r *UsageLogRepository) Create(ctx context.Context, log *vaultDomain.UsageLog) error {
	q, err := querier(ctx, r.db)
	if err != nil {
		return err
	}

	query := `INSERT INTO usage_logs (id, key_id, domain, profile_id, timestamp, action)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = q.ExecContext(
		ctx,
		query,
		log.ID,
		log.KeyID,
		log.Domain,
		log.ProfileID,
		log.Timestamp,
		string(log.Action),
	)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to create usage log")
	}
	return nil
}

// GetAll retrieves every usage log entry ordered by timestamp.
func (r *UsageLogRepository) GetAll(ctx context.Context) ([]*vaultDomain.UsageLog, error) {
	return r.list(ctx, `SELECT id, key_id, domain, profile_id, timestamp, action
						FROM usage_logs ORDER BY timestamp, id`)
}

// GetByKey retrieves the usage log entries recorded for one key.
func (r *UsageLogRepository) GetByKey(ctx context.Context, keyID string) ([]*vaultDomain.UsageLog, error) {
	return r.list(ctx, `SELECT id, key_id, domain, profile_id, timestamp, action
						FROM usage_logs WHERE key_id = ? ORDER BY timestamp, id`, keyID)
}

// DeleteOlderThan removes every entry with a timestamp at or below the cutoff
// (epoch milliseconds) and reports how many rows were swept. The timestamp
// index keeps the sweep from scanning live entries.
func (r *UsageLogRepository) DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error) {
	q, err := querier(ctx, r.db)
	if err != nil {
		return 0, err
	}

	result, err := q.ExecContext(ctx, `DELETE FROM usage_logs WHERE timestamp <= ?`, cutoff)
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to delete old usage logs")
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to delete old usage logs")
	}
	return deleted, nil
}

func (r *UsageLogRepository) list(ctx context.Context, query string, args ...any) ([]*vaultDomain.UsageLog, error) {
	q, err := querier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.WrapStorage(err, "failed to list usage logs")
	}
	defer rows.Close()

	var logs []*vaultDomain.UsageLog
	for rows.Next() {
		log, err := scanUsageLog(rows)
		if err != nil {
			return nil, apperrors.WrapStorage(err, "failed to scan usage log")
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err, "failed to iterate usage logs")
	}
	return logs, nil
}

func scanUsageLog(rows *sql.Rows) (*vaultDomain.UsageLog, error) {
	var log vaultDomain.UsageLog
	var action string

	err := rows.Scan(
		&log.ID,
		&log.KeyID,
		&log.Domain,
		&log.ProfileID,
		&log.Timestamp,
		&action,
	)
	if err != nil {
		return nil, err
	}

	log.Action = vaultDomain.UsageAction(action)
	return &log, nil
}
