package provider

import (
	"errors"
	"fmt"
)

// ErrUnsupportedProvider indicates the configured provider has no client
// implementation.
var ErrUnsupportedProvider = errors.New("unsupported LLM provider")

// ProviderError wraps a transport or authentication failure from an LLM
// backend. It is terminal for the in-flight endpoint and the request; it is
// not retried automatically.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
