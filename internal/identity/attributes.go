package identity

import "context"

// Attributes is the loosely-typed attribute set yielded by a completed
// provider handshake. Missing keys read as empty strings.
type Attributes map[string]string

// Get returns the value for key, or "" when absent.
func (a Attributes) Get(key string) string {
	if a == nil {
		return ""
	}
	return a[key]
}

// Provider completes a third-party handshake and yields verified attributes.
type Provider interface {
	AuthCodeURL(state string) string
	FetchIdentity(ctx context.Context, code string) (Attributes, error)
}
