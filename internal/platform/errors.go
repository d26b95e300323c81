package platform

import (
	"errors"
	"fmt"
)

// ErrMissingLookupKey is an error returned when neither SKU nor query was provided for a lookup.
var ErrMissingLookupKey = errors.New("either sku or query must be provided")

// StoreError wraps an error returned by the price truth store with the failed operation name.
type StoreError struct {
	Op  string
	Err error
}

// Error returns the store error message.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store operation %q failed: %s", e.Op, e.Err)
}

// Unwrap returns the underlying store error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError returns a StoreError wrapping err, or nil when err is nil.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
