package services

import (
	"fmt"
	"strings"
)

// ValidationError means user input failed a precondition; the operation was
// never attempted and the message is safe to show on the form.
type ValidationError struct {
	Msg    string
	Fields []string // missing/invalid field names, when known
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return e.Msg + ": " + strings.Join(e.Fields, ", ")
	}
	return e.Msg
}

// StoreError wraps a failed read/write against the database. Callers abort the
// operation and show a generic failure; the wrapped error goes to the log.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store: %s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

// OrderCreationError is the single composite failure surfaced when any step of
// checkout fails after validation passed. The transaction has been rolled
// back; no partial order exists.
type OrderCreationError struct{ Err error }

func (e *OrderCreationError) Error() string { return fmt.Sprintf("order creation failed: %v", e.Err) }
func (e *OrderCreationError) Unwrap() error { return e.Err }

// StatusUpdateError means the status write itself failed; no stock side
// effects were applied.
type StatusUpdateError struct{ Err error }

func (e *StatusUpdateError) Error() string { return fmt.Sprintf("status update failed: %v", e.Err) }
func (e *StatusUpdateError) Unwrap() error { return e.Err }
