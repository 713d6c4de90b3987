package domain

// SiteBinding records an observed association between a web domain, a profile
// and a specific key, used to drive fill recommendations. Bindings carry no
// uniqueness constraint: repeated associations accumulate and every match is
// returned as a recommendation candidate.
type SiteBinding struct {
	ID        string
	Domain    string
	ProfileID string
	KeyID     string
	Service   ServiceType
	CreatedAt int64
}
