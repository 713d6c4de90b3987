// Package commands contains CLI command implementations for the application.
package commands

import (
	"fmt"
	"io"
	"os"

	vaultDomain "github.com/aikey/vault/internal/vault/domain"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// parseServiceType converts a service string to vaultDomain.ServiceType.
// Returns an error if the service string is invalid.
func parseServiceType(service string) (vaultDomain.ServiceType, error) {
	st := vaultDomain.ServiceType(service)
	if !st.Valid() {
		return "", fmt.Errorf(
			"invalid service: %s (valid options: OpenAI, Anthropic, Azure OpenAI, Groq, Custom)",
			service,
		)
	}
	return st, nil
}
