package service

import (
	"context"
	"encoding/base64"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/aikey/vault/internal/crypto/domain"
	apperrors "github.com/aikey/vault/internal/errors"
)

// memorySaltStore is an in-memory SaltStore for tests.
type memorySaltStore struct {
	mu       sync.Mutex
	values   map[string]string
	getErr   error
	setErr   error
	setCalls int
}

func newMemorySaltStore() *memorySaltStore {
	return &memorySaltStore{values: make(map[string]string)}
}

func (m *memorySaltStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memorySaltStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.setCalls++
	m.values[key] = value
	return nil
}

func testIdentity() DeviceIdentity {
	return DeviceIdentity{
		InstallationID: "test-installation-id",
		ClientInfo:     "aikey-vault/test",
		Locale:         "en_US",
	}
}

func TestEncryptionService_Initialize(t *testing.T) {
	ctx := context.Background()

	t.Run("transitions to ready", func(t *testing.T) {
		svc := NewEncryptionService(testIdentity(), newMemorySaltStore())
		assert.Equal(t, cryptoDomain.StateUninitialized, svc.State())

		require.NoError(t, svc.Initialize(ctx))
		assert.Equal(t, cryptoDomain.StateReady, svc.State())
	})

	t.Run("persists the salt exactly once", func(t *testing.T) {
		salts := newMemorySaltStore()
		svc := NewEncryptionService(testIdentity(), salts)

		require.NoError(t, svc.Initialize(ctx))
		require.NoError(t, svc.Initialize(ctx))
		assert.Equal(t, 1, salts.setCalls)

		stored, found, err := salts.Get(ctx, "encryption_salt")
		require.NoError(t, err)
		require.True(t, found)

		salt, err := base64.StdEncoding.DecodeString(stored)
		require.NoError(t, err)
		assert.Len(t, salt, 16)
	})

	t.Run("salt store read failure leaves service uninitialized", func(t *testing.T) {
		salts := newMemorySaltStore()
		salts.getErr = assert.AnError
		svc := NewEncryptionService(testIdentity(), salts)

		err := svc.Initialize(ctx)
		assert.Error(t, err)
		assert.Equal(t, cryptoDomain.StateUninitialized, svc.State())
	})

	t.Run("salt store write failure leaves service uninitialized", func(t *testing.T) {
		salts := newMemorySaltStore()
		salts.setErr = assert.AnError
		svc := NewEncryptionService(testIdentity(), salts)

		err := svc.Initialize(ctx)
		assert.Error(t, err)
		assert.Equal(t, cryptoDomain.StateUninitialized, svc.State())

		// Recoverable once the store works again
		salts.setErr = nil
		require.NoError(t, svc.Initialize(ctx))
		assert.Equal(t, cryptoDomain.StateReady, svc.State())
	})

	t.Run("concurrent initialization coalesces", func(t *testing.T) {
		salts := newMemorySaltStore()
		svc := NewEncryptionService(testIdentity(), salts)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, svc.Initialize(ctx))
			}()
		}
		wg.Wait()

		assert.Equal(t, cryptoDomain.StateReady, svc.State())
		assert.Equal(t, 1, salts.setCalls)
	})
}

func TestEncryptionService_EncryptDecrypt(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		svc := NewEncryptionService(testIdentity(), newMemorySaltStore())
		require.NoError(t, svc.Initialize(ctx))

		plaintexts := []string{
			"sk-proj-1234567890abcdef",
			"",
			"unicode секрет 🔑",
		}
		for _, plaintext := range plaintexts {
			payload, err := svc.Encrypt(plaintext)
			require.NoError(t, err)

			decrypted, err := svc.Decrypt(payload.Ciphertext, payload.IV)
			require.NoError(t, err)
			assert.Equal(t, plaintext, decrypted)
		}
	})

	t.Run("iv is unique per call", func(t *testing.T) {
		svc := NewEncryptionService(testIdentity(), newMemorySaltStore())
		require.NoError(t, svc.Initialize(ctx))

		first, err := svc.Encrypt("same plaintext")
		require.NoError(t, err)
		second, err := svc.Encrypt("same plaintext")
		require.NoError(t, err)

		assert.NotEqual(t, first.IV, second.IV)
		assert.NotEqual(t, first.Ciphertext, second.Ciphertext)
	})

	t.Run("fails before initialization", func(t *testing.T) {
		svc := NewEncryptionService(testIdentity(), newMemorySaltStore())

		_, err := svc.Encrypt("secret")
		assert.ErrorIs(t, err, cryptoDomain.ErrNotInitialized)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotInitialized))

		_, err = svc.Decrypt("YWJj", "YWJj")
		assert.ErrorIs(t, err, cryptoDomain.ErrNotInitialized)
	})

	t.Run("tampered ciphertext fails authentication", func(t *testing.T) {
		svc := NewEncryptionService(testIdentity(), newMemorySaltStore())
		require.NoError(t, svc.Initialize(ctx))

		payload, err := svc.Encrypt("sk-proj-1234567890abcdef")
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(payload.Ciphertext)
		require.NoError(t, err)
		raw[0] ^= 0xff
		tampered := base64.StdEncoding.EncodeToString(raw)

		_, err = svc.Decrypt(tampered, payload.IV)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("corrupted iv fails as decryption failure", func(t *testing.T) {
		svc := NewEncryptionService(testIdentity(), newMemorySaltStore())
		require.NoError(t, svc.Initialize(ctx))

		payload, err := svc.Encrypt("sk-proj-1234567890abcdef")
		require.NoError(t, err)

		// A stored IV truncated to 4 bytes decodes fine but is no valid nonce.
		truncated := base64.StdEncoding.EncodeToString([]byte{0x01, 0x02, 0x03, 0x04})

		_, err = svc.Decrypt(payload.Ciphertext, truncated)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)

		_, err = svc.Decrypt(payload.Ciphertext, base64.StdEncoding.EncodeToString(nil))
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("malformed base64 fails as decryption failure", func(t *testing.T) {
		svc := NewEncryptionService(testIdentity(), newMemorySaltStore())
		require.NoError(t, svc.Initialize(ctx))

		_, err := svc.Decrypt("not base64!!!", "also not base64!!!")
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})
}

func TestEncryptionService_Reinitialization(t *testing.T) {
	ctx := context.Background()

	t.Run("second initialize decrypts data from the first", func(t *testing.T) {
		salts := newMemorySaltStore()

		first := NewEncryptionService(testIdentity(), salts)
		require.NoError(t, first.Initialize(ctx))
		payload, err := first.Encrypt("sk-ant-api03-secret")
		require.NoError(t, err)

		// A fresh service over the same salt store derives the same key
		second := NewEncryptionService(testIdentity(), salts)
		require.NoError(t, second.Initialize(ctx))

		decrypted, err := second.Decrypt(payload.Ciphertext, payload.IV)
		require.NoError(t, err)
		assert.Equal(t, "sk-ant-api03-secret", decrypted)
	})

	t.Run("different fingerprint cannot decrypt", func(t *testing.T) {
		salts := newMemorySaltStore()

		first := NewEncryptionService(testIdentity(), salts)
		require.NoError(t, first.Initialize(ctx))
		payload, err := first.Encrypt("sk-ant-api03-secret")
		require.NoError(t, err)

		otherIdentity := testIdentity()
		otherIdentity.InstallationID = "another-installation"
		other := NewEncryptionService(otherIdentity, salts)
		require.NoError(t, other.Initialize(ctx))

		_, err = other.Decrypt(payload.Ciphertext, payload.IV)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})
}

func TestEncryptionService_Reset(t *testing.T) {
	ctx := context.Background()
	salts := newMemorySaltStore()
	svc := NewEncryptionService(testIdentity(), salts)

	require.NoError(t, svc.Initialize(ctx))
	payload, err := svc.Encrypt("secret")
	require.NoError(t, err)

	svc.Reset()
	assert.Equal(t, cryptoDomain.StateUninitialized, svc.State())

	_, err = svc.Decrypt(payload.Ciphertext, payload.IV)
	assert.ErrorIs(t, err, cryptoDomain.ErrNotInitialized)

	// Initialize again: same salt store, same key, data still readable
	require.NoError(t, svc.Initialize(ctx))
	decrypted, err := svc.Decrypt(payload.Ciphertext, payload.IV)
	require.NoError(t, err)
	assert.Equal(t, "secret", decrypted)
}
