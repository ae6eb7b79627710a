package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
)

// OrderError is a business rejection of an order. Its reason is reported to
// the client in the error field of the order result.
type OrderError struct {
	Reason string
}

func (e *OrderError) Error() string {
	return e.Reason
}

// RejectOrder builds an OrderError.
func RejectOrder(reason string) error {
	return &OrderError{Reason: reason}
}
