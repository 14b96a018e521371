package provider

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when the completion did not finish within the
// configured deadline. Callers treat it as a degradation signal, not a
// failure of the turn.
var ErrTimeout = errors.New("completion request timed out")

// ProviderError is a structured non-2xx response from the completion
// provider.
type ProviderError struct {
	Status int
	Detail string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (HTTP %d): %s", e.Status, e.Detail)
}
