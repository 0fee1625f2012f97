package booking

import (
	"errors"
	"fmt"
)

// ErrMissingServiceSelection is returned when a request names no services.
// Rejected before any network call.
var ErrMissingServiceSelection = errors.New("booking: at least one service must be selected")

// UpstreamValidationError is a vendor-side rejection of a compiled payload.
// It is surfaced verbatim as a diagnostic and never retried: re-submitting an
// invariant violation cannot succeed without re-compilation.
type UpstreamValidationError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamValidationError) Error() string {
	return fmt.Sprintf("booking: vendor rejected appointment (status %d): %s", e.StatusCode, e.Detail)
}
