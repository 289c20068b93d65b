package identitysync

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports a malformed inbound event. It is never retried and
// never swallowed; the boundary layer maps it to a client-error response.
// Reasons are sorted so the same bad payload always renders the same error.
type ValidationError struct {
	EventType string
	Reasons   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s event: %s", e.EventType, strings.Join(e.Reasons, "; "))
}

func newValidationError(eventType string, reasons []string) *ValidationError {
	sort.Strings(reasons)
	return &ValidationError{EventType: eventType, Reasons: reasons}
}

// AsValidationError unwraps err into a ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
