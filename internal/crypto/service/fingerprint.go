package service

import (
	"strings"
)

// DeviceIdentity carries the stable inputs of the device fingerprint: a
// per-installation identifier, a client identification string and the locale.
// The fingerprint binds the master key to this installation; it is always
// recomputed on demand and never persisted.
type DeviceIdentity struct {
	InstallationID string
	ClientInfo     string
	Locale         string
}

// Fingerprint concatenates the identity components into the key-derivation
// input. Changing any component yields a different master key, which makes
// previously encrypted data unreadable on purpose.
func (d DeviceIdentity) Fingerprint() string {
	return strings.Join([]string{d.InstallationID, d.ClientInfo, d.Locale}, "-")
}
