package db

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a task, session or day either does not exist
// or is owned by a different user. The two cases are deliberately
// indistinguishable so existence never leaks across users.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed input. It is always returned before any
// mutation is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StoreError wraps an underlying persistence failure. The message stays
// generic; the full error is logged at the call site and reachable via
// Unwrap for callers that need it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: storage failure", e.Op)
}

func (e *StoreError) Unwrap() error { return e.Err }

func errContent(reason string) error {
	return &ValidationError{Field: "content", Reason: reason}
}

func errStatus(status string) error {
	return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
}

func errDate(date string) error {
	return &ValidationError{Field: "date", Reason: fmt.Sprintf("malformed date %q, want YYYY-MM-DD", date)}
}
