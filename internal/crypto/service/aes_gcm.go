package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/aikey/vault/internal/crypto/domain"
)

// AESGCMCipher implements authenticated encryption using AES-256-GCM
// (Advanced Encryption Standard with Galois/Counter Mode).
//
// Security properties:
//   - 256-bit key size
//   - 12-byte IV (96 bits, randomly generated per encryption)
//   - 16-byte authentication tag (128 bits, appended to ciphertext)
//   - Authenticated encryption prevents tampering and forgery
//
// Thread safety:
//
//	The cipher instance is stateless and safe for concurrent use from multiple
//	goroutines. Each encryption operation generates a unique IV independently.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// The key must be exactly 32 bytes (256 bits) for AES-256. The constructor
// initializes the underlying AES cipher block and wraps it with GCM mode;
// the caller may zero the key slice afterwards, the expanded key schedule
// is held internally.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != 32 {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM.
//
// A unique 12-byte IV is randomly generated for each encryption operation
// using crypto/rand and must be stored alongside the ciphertext for later
// decryption. With GCM, IV reuse under the same key breaks the construction,
// so the IV is never caller-supplied. The returned ciphertext includes the
// 16-byte authentication tag appended to the end.
func (a *AESGCMCipher) Encrypt(plaintext []byte) (ciphertext, iv []byte, err error) {
	iv = make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(iv); err != nil {
		return nil, nil, fmt.Errorf("failed to generate iv: %w", err)
	}

	ciphertext = a.aead.Seal(nil, iv, plaintext, nil)
	return ciphertext, iv, nil
}

// Decrypt decrypts ciphertext using AES-256-GCM with the provided IV.
//
// The authentication tag is verified before any plaintext is returned, so a
// tampered or corrupted ciphertext yields an error rather than garbage. An IV
// of the wrong length is treated the same way as a failed tag check; GCM
// would otherwise panic on it.
func (a *AESGCMCipher) Decrypt(ciphertext, iv []byte) ([]byte, error) {
	if len(iv) != a.aead.NonceSize() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	plaintext, err := a.aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
