// SPDX-License-Identifier: MPL-2.0

// Package issue provides the user-facing error type for setup failures:
// what was being attempted, which resource was involved, and what the
// operator can try. Analytical outcomes (inconclusive rankings, sanity
// mismatches) are not errors and never pass through here.
package issue

import (
	"errors"
	"fmt"
	"strings"
)

// SetupError is an error with operator-facing context. Setup errors abort
// a run before or during probing and map to a non-zero process exit.
type SetupError struct {
	// Operation describes what was being attempted (e.g. "resolve target executable").
	Operation string
	// Resource identifies the file, path or executable involved (optional).
	Resource string
	// Suggestions are hints on how to fix the issue (optional).
	Suggestions []string
	// Cause is the underlying error (optional).
	Cause error
}

// New creates a SetupError for the given operation.
func New(operation string) *SetupError {
	return &SetupError{Operation: operation}
}

// Wrap attaches an underlying cause to a new SetupError. Returns nil when
// err is nil so call sites can wrap unconditionally.
func Wrap(err error, operation string) *SetupError {
	if err == nil {
		return nil
	}
	return &SetupError{Operation: operation, Cause: err}
}

// WithResource sets the resource and returns the error for chaining.
func (e *SetupError) WithResource(resource string) *SetupError {
	e.Resource = resource
	return e
}

// WithSuggestion appends an operator hint and returns the error for chaining.
func (e *SetupError) WithSuggestion(s string) *SetupError {
	e.Suggestions = append(e.Suggestions, s)
	return e
}

// Error implements the error interface.
func (e *SetupError) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *SetupError) Unwrap() error {
	return e.Cause
}

// Format renders the error for display. Suggestions are listed beneath the
// message; verbose mode appends the full cause chain.
func (e *SetupError) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, s := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(s)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		err := e.Cause
		depth := 1
		for err != nil {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			err = errors.Unwrap(err)
			depth++
		}
	}

	return msg.String()
}
