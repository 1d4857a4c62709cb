package internal

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedDocument        = errors.New("malformed document")
	ErrInvalidOperationOrdering = errors.New("invalid operation ordering")
)

// MalformedDocumentError reports where inflating a stream failed.
type MalformedDocumentError struct {
	// index of the offending operation in the flat stream, -1 when the stream ended early
	Index  int
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed document: %s", e.Reason)
	}
	return fmt.Sprintf("malformed document: operation %d: %s", e.Index, e.Reason)
}

func (e *MalformedDocumentError) Unwrap() error { return ErrMalformedDocument }

func orderingError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperationOrdering, fmt.Sprintf(format, args...))
}
