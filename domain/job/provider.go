package job

import "fmt"

// Provider identifies an external job board source.
type Provider string

// Provider values.
const (
	ProviderGreenhouse Provider = "greenhouse"
)

// ErrUnknownProvider indicates a source value outside the known provider set.
type ErrUnknownProvider struct {
	Value string
}

// Error implements the error interface.
func (e ErrUnknownProvider) Error() string {
	return fmt.Sprintf("unknown provider %q", e.Value)
}

// ParseProvider validates a raw source string against the known providers.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderGreenhouse:
		return ProviderGreenhouse, nil
	default:
		return "", ErrUnknownProvider{Value: s}
	}
}

// String returns the string representation of the provider.
func (p Provider) String() string {
	return string(p)
}
