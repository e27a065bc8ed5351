package activity

import "errors"

var (
	// ErrInvalidInput marks a request rejected before reaching the database.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when an update targets a missing notification.
	ErrNotFound = errors.New("notification not found")
	// ErrStore wraps every failure reported by the database.
	ErrStore = errors.New("store failure")
)

type storeError struct {
	op  string
	err error
}

func (e *storeError) Error() string { return e.op + ": " + e.err.Error() }

func (e *storeError) Unwrap() []error { return []error{ErrStore, e.err} }

func wrapStore(op string, err error) error {
	return &storeError{op: op, err: err}
}
