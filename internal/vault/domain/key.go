// Package domain defines the core domain models and types for the encrypted
// key vault: stored secrets, their site bindings and the usage audit trail.
// Timestamps are epoch milliseconds throughout, matching the persisted form.
package domain

// ServiceType identifies the AI provider a stored key belongs to.
type ServiceType string

// Supported service types.
const (
	ServiceOpenAI      ServiceType = "OpenAI"
	ServiceAnthropic   ServiceType = "Anthropic"
	ServiceAzureOpenAI ServiceType = "Azure OpenAI"
	ServiceGroq        ServiceType = "Groq"
	ServiceCustom      ServiceType = "Custom"
)

// Valid reports whether s is one of the supported service types.
func (s ServiceType) Valid() bool {
	switch s {
	case ServiceOpenAI, ServiceAnthropic, ServiceAzureOpenAI, ServiceGroq, ServiceCustom:
		return true
	}
	return false
}

// EncryptedKey is one stored secret. Ciphertext and IV are the opaque base64
// pair produced by the encryption service; neither is usable without the
// other, and plaintext never appears on this type.
type EncryptedKey struct {
	ID         string
	Ciphertext string
	IV         string
	Service    ServiceType
	Name       string
	Tag        string
	ProfileID  string
	CreatedAt  int64
	UpdatedAt  int64
}
