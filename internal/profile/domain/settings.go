package domain

// Settings is the singleton profile settings record.
type Settings struct {
	DefaultProfileID         string `json:"defaultProfileId"`
	RememberProfilePerDomain bool   `json:"rememberProfilePerDomain"`
	ShowProfileTips          bool   `json:"showProfileTips"`
}

// SettingsPatch is a partial settings update. Nil fields are left untouched
// by Merge.
type SettingsPatch struct {
	DefaultProfileID         *string
	RememberProfilePerDomain *bool
	ShowProfileTips          *bool
}

// DefaultSettings returns the settings shape seeded alongside the built-in
// profiles.
func DefaultSettings(defaultProfileID string) Settings {
	return Settings{
		DefaultProfileID:         defaultProfileID,
		RememberProfilePerDomain: true,
		ShowProfileTips:          true,
	}
}

// Merge applies patch onto s and returns the result. Fields absent from the
// patch keep their current values.
func (s Settings) Merge(patch SettingsPatch) Settings {
	if patch.DefaultProfileID != nil {
		s.DefaultProfileID = *patch.DefaultProfileID
	}
	if patch.RememberProfilePerDomain != nil {
		s.RememberProfilePerDomain = *patch.RememberProfilePerDomain
	}
	if patch.ShowProfileTips != nil {
		s.ShowProfileTips = *patch.ShowProfileTips
	}
	return s
}

// DomainPreference pins a web domain to a profile. Repeated writes for the
// same domain overwrite the previous preference.
type DomainPreference struct {
	ID        string
	Domain    string
	ProfileID string
	CreatedAt int64
}

// PreferenceID derives the deterministic record id for a domain, making the
// preference upsert idempotent per domain.
func PreferenceID(domain string) string {
	return "pref_" + domain
}
