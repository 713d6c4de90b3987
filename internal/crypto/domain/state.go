// Package domain defines core domain models and errors for device-bound encryption.
package domain

// State is the lifecycle state of the encryption service. The service starts
// Uninitialized, passes through Initializing while the master key is being
// derived, and serves encrypt/decrypt calls only once Ready. A tagged state
// rules out half-initialized field combinations.
type State int

const (
	// StateUninitialized means no master key is held; all cryptographic
	// operations fail with ErrNotInitialized.
	StateUninitialized State = iota
	// StateInitializing means a key derivation is in flight.
	StateInitializing
	// StateReady means the master key is derived and operations may proceed.
	StateReady
)

// String returns the human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}
