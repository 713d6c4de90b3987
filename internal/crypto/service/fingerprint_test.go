package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceIdentity_Fingerprint(t *testing.T) {
	identity := DeviceIdentity{
		InstallationID: "install-1",
		ClientInfo:     "aikey-vault/1.0",
		Locale:         "en_US",
	}

	assert.Equal(t, "install-1-aikey-vault/1.0-en_US", identity.Fingerprint())

	t.Run("stable across calls", func(t *testing.T) {
		assert.Equal(t, identity.Fingerprint(), identity.Fingerprint())
	})

	t.Run("any component changes the fingerprint", func(t *testing.T) {
		changed := identity
		changed.Locale = "pt_BR"
		assert.NotEqual(t, identity.Fingerprint(), changed.Fingerprint())
	})
}
