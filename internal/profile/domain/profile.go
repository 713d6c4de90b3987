// Package domain defines the profile entities and the business rules that
// guard profile lifecycle operations: built-in protection, last-profile
// protection and key-ownership checks.
package domain

import (
	"github.com/aikey/vault/internal/errors"
)

// Built-in profile identifiers. These two profiles are seeded on first run
// and can never be renamed or deleted.
const (
	ProfileIDPersonal = "personal"
	ProfileIDWork     = "work"
)

// Metadata is the bookkeeping block attached to every profile. KeyCount is
// maintained by the key operations, LastUsed by profile switching.
type Metadata struct {
	KeyCount    int    `json:"keyCount"`
	LastUsed    int64  `json:"lastUsed"`
	Description string `json:"description,omitempty"`
}

// Profile is a named partition of stored keys. Timestamps are epoch
// milliseconds.
type Profile struct {
	ID        string
	Name      string
	Color     string
	Icon      string
	IsDefault bool
	IsBuiltIn bool
	CreatedAt int64
	UpdatedAt int64
	Metadata  Metadata
}

// Profile-specific error definitions.
var (
	// ErrProfileNotFound indicates the referenced profile does not exist.
	ErrProfileNotFound = errors.Wrap(errors.ErrNotFound, "profile not found")

	// ErrBuiltInProfile indicates a delete was attempted on a built-in profile.
	ErrBuiltInProfile = errors.Wrap(errors.ErrPolicyViolation, "cannot delete built-in profile")

	// ErrRenameBuiltIn indicates a rename was attempted on a built-in profile.
	ErrRenameBuiltIn = errors.Wrap(errors.ErrPolicyViolation, "cannot rename built-in profile")

	// ErrLastProfile indicates a delete was attempted on the only remaining profile.
	ErrLastProfile = errors.Wrap(errors.ErrPolicyViolation, "cannot delete the last profile")

	// ErrProfileHasKeys indicates a delete was attempted on a profile that still owns keys.
	ErrProfileHasKeys = errors.Wrap(errors.ErrPolicyViolation, "cannot delete a profile that still has keys")

	// ErrPreferenceNotFound indicates no preference is recorded for the domain.
	ErrPreferenceNotFound = errors.Wrap(errors.ErrNotFound, "domain preference not found")
)

// BuiltInProfiles returns the two seed profiles with their canonical
// identifiers, colors and icons. Personal starts as the default.
func BuiltInProfiles(now int64) []*Profile {
	return []*Profile{
		{
			ID:        ProfileIDPersonal,
			Name:      "Personal",
			Color:     "#1976d2",
			Icon:      "👤",
			IsDefault: true,
			IsBuiltIn: true,
			CreatedAt: now,
			UpdatedAt: now,
			Metadata:  Metadata{LastUsed: now},
		},
		{
			ID:        ProfileIDWork,
			Name:      "Work",
			Color:     "#388e3c",
			Icon:      "💼",
			IsDefault: false,
			IsBuiltIn: true,
			CreatedAt: now,
			UpdatedAt: now,
			Metadata:  Metadata{LastUsed: now},
		},
	}
}

// CanDeleteProfile evaluates deletion eligibility for profile given the
// current total number of profiles. The key-ownership check uses the cached
// Metadata.KeyCount, which the key operations keep in step with the actual
// key rows.
func CanDeleteProfile(profile *Profile, totalProfiles int) error {
	if profile.IsBuiltIn {
		return ErrBuiltInProfile
	}
	if totalProfiles <= 1 {
		return ErrLastProfile
	}
	if profile.Metadata.KeyCount > 0 {
		return ErrProfileHasKeys
	}
	return nil
}

// CanRenameProfile reports whether profile may be renamed. Built-in profiles
// keep their seeded names.
func CanRenameProfile(profile *Profile) error {
	if profile.IsBuiltIn {
		return ErrRenameBuiltIn
	}
	return nil
}
