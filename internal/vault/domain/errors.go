package domain

import (
	"github.com/aikey/vault/internal/errors"
)

// Vault-specific error definitions.
var (
	// ErrKeyNotFound indicates the referenced key does not exist.
	ErrKeyNotFound = errors.Wrap(errors.ErrNotFound, "key not found")

	// ErrBindingNotFound indicates the referenced site binding does not exist.
	ErrBindingNotFound = errors.Wrap(errors.ErrNotFound, "binding not found")

	// ErrMetadataNotFound indicates no value is stored under the metadata key.
	ErrMetadataNotFound = errors.Wrap(errors.ErrNotFound, "metadata not found")

	// ErrInvalidService indicates the service tag is not one of the supported types.
	ErrInvalidService = errors.Wrap(errors.ErrInvalidInput, "unsupported service type")

	// ErrInvalidAction indicates the usage action is neither fill nor copy.
	ErrInvalidAction = errors.Wrap(errors.ErrInvalidInput, "unsupported usage action")

	// ErrNoCurrentProfile indicates no active profile is recorded and none was given.
	ErrNoCurrentProfile = errors.Wrap(errors.ErrInvalidInput, "no current profile set")
)
