package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"sync"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/sync/singleflight"

	cryptoDomain "github.com/aikey/vault/internal/crypto/domain"
	apperrors "github.com/aikey/vault/internal/errors"
)

const (
	// saltStorageKey is the fixed settings-store key holding the base64 salt.
	saltStorageKey = "encryption_salt"

	saltSize         = 16
	masterKeySize    = 32
	pbkdf2Iterations = 100_000
)

// EncryptionService performs device-bound encryption and decryption of short
// secret strings. The master key is derived from the device fingerprint and a
// random salt persisted in the salt store, so re-initialization on the same
// device reproduces the same key while a copied database file alone stays
// unreadable elsewhere.
//
// The key is derived from a fingerprint rather than a user passphrase. That
// keeps the UX password-free at the cost of only raising the bar against
// casual inspection of the raw database, a documented trade-off.
type EncryptionService struct {
	identity DeviceIdentity
	salts    SaltStore

	mu     sync.RWMutex
	state  cryptoDomain.State
	cipher *AESGCMCipher

	init singleflight.Group
}

// NewEncryptionService creates an encryption service in the Uninitialized
// state. Initialize must be called before any Encrypt or Decrypt.
func NewEncryptionService(identity DeviceIdentity, salts SaltStore) *EncryptionService {
	return &EncryptionService{
		identity: identity,
		salts:    salts,
		state:    cryptoDomain.StateUninitialized,
	}
}

// State returns the current lifecycle state.
func (s *EncryptionService) State() cryptoDomain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Initialize derives the master key from the device fingerprint and the
// persisted salt. Idempotent: once Ready it returns immediately, and
// concurrent callers coalesce onto a single derivation. Any failure leaves
// the service Uninitialized.
func (s *EncryptionService) Initialize(ctx context.Context) error {
	s.mu.RLock()
	ready := s.state == cryptoDomain.StateReady
	s.mu.RUnlock()
	if ready {
		return nil
	}

	_, err, _ := s.init.Do(saltStorageKey, func() (any, error) {
		return nil, s.initialize(ctx)
	})
	return err
}

func (s *EncryptionService) initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.state == cryptoDomain.StateReady {
		s.mu.Unlock()
		return nil
	}
	s.state = cryptoDomain.StateInitializing
	s.mu.Unlock()

	fail := func(err error) error {
		s.mu.Lock()
		s.state = cryptoDomain.StateUninitialized
		s.cipher = nil
		s.mu.Unlock()
		return err
	}

	salt, err := s.getOrCreateSalt(ctx)
	if err != nil {
		return fail(err)
	}

	fingerprint := s.identity.Fingerprint()
	key := pbkdf2.Key([]byte(fingerprint), salt, pbkdf2Iterations, masterKeySize, sha256.New)
	defer cryptoDomain.Zero(key)

	cipher, err := NewAESGCM(key)
	if err != nil {
		return fail(apperrors.Wrap(err, "failed to build cipher"))
	}

	s.mu.Lock()
	s.cipher = cipher
	s.state = cryptoDomain.StateReady
	s.mu.Unlock()
	return nil
}

// getOrCreateSalt reads the persisted salt, generating and persisting a fresh
// 16-byte random salt on first use so later initializations derive the same
// master key.
func (s *EncryptionService) getOrCreateSalt(ctx context.Context) ([]byte, error) {
	stored, found, err := s.salts.Get(ctx, saltStorageKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read salt")
	}
	if found {
		salt, err := base64.StdEncoding.DecodeString(stored)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to decode stored salt")
		}
		return salt, nil
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, apperrors.Wrap(err, "failed to generate salt")
	}
	if err := s.salts.Set(ctx, saltStorageKey, base64.StdEncoding.EncodeToString(salt)); err != nil {
		return nil, apperrors.Wrap(err, "failed to persist salt")
	}
	return salt, nil
}

// Encrypt seals the UTF-8 encoding of plaintext with the master key and a
// fresh random 12-byte IV, returning ciphertext and IV base64-encoded.
func (s *EncryptionService) Encrypt(plaintext string) (cryptoDomain.EncryptedPayload, error) {
	s.mu.RLock()
	cipher, state := s.cipher, s.state
	s.mu.RUnlock()

	if state != cryptoDomain.StateReady {
		return cryptoDomain.EncryptedPayload{}, cryptoDomain.ErrNotInitialized
	}

	ciphertext, iv, err := cipher.Encrypt([]byte(plaintext))
	if err != nil {
		return cryptoDomain.EncryptedPayload{}, apperrors.Wrap(err, "failed to encrypt")
	}

	return cryptoDomain.EncryptedPayload{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		IV:         base64.StdEncoding.EncodeToString(iv),
	}, nil
}

// Decrypt opens a base64 ciphertext/IV pair and returns the plaintext.
// A ciphertext whose authentication tag does not verify, or that cannot be
// decoded at all, fails with ErrDecryptionFailed; no partial plaintext is
// ever returned.
func (s *EncryptionService) Decrypt(ciphertext, iv string) (string, error) {
	s.mu.RLock()
	cipher, state := s.cipher, s.state
	s.mu.RUnlock()

	if state != cryptoDomain.StateReady {
		return "", cryptoDomain.ErrNotInitialized
	}

	rawCiphertext, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	rawIV, err := base64.StdEncoding.DecodeString(iv)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	plaintext, err := cipher.Decrypt(rawCiphertext, rawIV)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// Reset discards the derived key and returns the service to Uninitialized.
// Used for test isolation and re-keying flows.
func (s *EncryptionService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cipher = nil
	s.state = cryptoDomain.StateUninitialized
}
