package domain

// UsageAction is the kind of key usage being audited.
type UsageAction string

// Audited actions.
const (
	ActionFill UsageAction = "fill"
	ActionCopy UsageAction = "copy"
)

// Valid reports whether a is a known usage action.
func (a UsageAction) Valid() bool {
	return a == ActionFill || a == ActionCopy
}

// UsageLog is one append-only audit record of a fill or copy action.
// Entries are only ever removed in bulk by the retention sweep.
type UsageLog struct {
	ID        string
	KeyID     string
	Domain    string
	ProfileID string
	Timestamp int64
	Action    UsageAction
}
