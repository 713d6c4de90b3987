// Package repository implements SQLite persistence for the vault collections:
// encrypted keys, site bindings, usage logs and free-form metadata.
// All methods join an ambient transaction when one is present in the context.
package repository

import (
	"context"
	"database/sql"

	"github.com/aikey/vault/internal/database"
	apperrors "github.com/aikey/vault/internal/errors"
)

// querier resolves the executor for ctx, rejecting use before the storage
// layer has been initialized with an open database handle.
func querier(ctx context.Context, db *sql.DB) (database.Querier, error) {
	if db == nil {
		return nil, apperrors.ErrNotInitialized
	}
	return database.GetTx(ctx, db), nil
}
