package domain

import (
	"github.com/aikey/vault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures.
var (
	// ErrNotInitialized indicates an encrypt or decrypt call was made before
	// Initialize completed. Recoverable: call Initialize and retry.
	ErrNotInitialized = errors.Wrap(errors.ErrNotInitialized, "encryption service not initialized")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// This error can occur due to:
	//   - The authentication tag not verifying (tampered or corrupted data)
	//   - The wrong key being used, e.g. after a device-fingerprint change
	//     invalidates previously encrypted data
	//   - An invalid or corrupted IV
	//
	// A fingerprint change making old ciphertexts unreadable is an accepted,
	// expected failure mode of device-bound encryption, not a bug.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrInvalidKeySize indicates the cryptographic key is not 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")
)
