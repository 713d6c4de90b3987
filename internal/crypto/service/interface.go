// Package service provides device-bound encryption of vault secrets.
// The master key is derived once per device from a fingerprint and a
// persisted random salt, and all secrets are sealed with AES-256-GCM.
package service

import (
	"context"

	cryptoDomain "github.com/aikey/vault/internal/crypto/domain"
)

// SaltStore is the key-value persisted settings store the encryption service
// uses to keep its random salt across restarts. Get reports whether a value
// exists under the key; Set overwrites any previous value.
type SaltStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

// Encryptor defines the caller-facing contract of the encryption service.
type Encryptor interface {
	// Initialize derives the master key. Idempotent; safe to call concurrently.
	Initialize(ctx context.Context) error

	// Encrypt seals a plaintext secret and returns the base64 ciphertext/IV pair.
	Encrypt(plaintext string) (cryptoDomain.EncryptedPayload, error)

	// Decrypt opens a base64 ciphertext/IV pair and returns the plaintext.
	Decrypt(ciphertext, iv string) (string, error)
}
