package render

import (
	"errors"
	"fmt"
	"image"
)

var (
	ErrChannelClosed = errors.New("result channel closed before frame was complete")
	ErrExtraResult   = errors.New("result received after frame was complete")
)

// ComputationError reports rows whose task failed. Pixels from other rows
// were computed, but no image is produced.
type ComputationError struct {
	// Rows are the failed row indices in ascending order.
	Rows []int

	// Missing is the number of pixels never delivered.
	Missing int

	// Pixels are the undelivered coordinates in row-major order.
	Pixels []image.Point

	Err error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%d rows failed with %d pixels missing: %v", len(e.Rows), e.Missing, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

// IntegrityError means the aggregator saw a different set of results than the
// scheduler should have produced. It always indicates a bug.
type IntegrityError struct {
	Expected int
	Received int

	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("result integrity: %d of %d pixels received: %v", e.Received, e.Expected, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}
