// Package validation rejects malformed API input before any computation
// begins. Validation failures carry per-field messages so clients can map
// them back onto form fields.
package validation

import (
	"fmt"
	"strings"
)

// Error aggregates field-level validation failures.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}
