// Package errors provides typed error categories for host-level
// classification: a fetch failure skips a cycle, a config failure is
// fatal.
package errors

import "fmt"

// Type represents the category of error
type Type int

const (
	// TypeConfig - missing or invalid configuration
	TypeConfig Type = iota
	// TypeNetwork - upstream fetch failures
	TypeNetwork
	// TypeParse - malformed upstream documents
	TypeParse
	// TypeRegistry - feed registration problems
	TypeRegistry
)

// Error is a categorized error with an optional cause.
type Error struct {
	Type    Type
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on category, so callers can branch without knowing the
// concrete failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewConfig creates a configuration error
func NewConfig(message string, cause error) *Error {
	return &Error{Type: TypeConfig, Message: message, Cause: cause}
}

// NewNetwork creates a network error
func NewNetwork(message string, cause error) *Error {
	return &Error{Type: TypeNetwork, Message: message, Cause: cause}
}

// NewParse creates a parse error
func NewParse(message string, cause error) *Error {
	return &Error{Type: TypeParse, Message: message, Cause: cause}
}

// NewRegistry creates a registration error
func NewRegistry(message string, cause error) *Error {
	return &Error{Type: TypeRegistry, Message: message, Cause: cause}
}

// IsType reports whether err belongs to the given category.
func IsType(err error, t Type) bool {
	e, ok := err.(*Error)
	return ok && e.Type == t
}
