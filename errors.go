package preduce

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is reported for malformed requests, such as a
	// schedule without workers.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange is reported when an index lies outside the bounds of
	// the slice it refers to.
	ErrOutOfRange = errors.New("index out of range")
)

// A RangeError records an index that lies outside [0, Len).
type RangeError struct {
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("index %v out of range [0:%v]", e.Index, e.Len)
}

// Unwrap returns ErrOutOfRange.
func (e *RangeError) Unwrap() error { return ErrOutOfRange }

/*
A WorkerError is returned when a fault occurs inside one of the workers
of a parallel operation. Worker is the index of the worker that
encountered the fault first, and Err is the underlying cause.

The other workers are stopped before a WorkerError is returned, and
their partial results are discarded.
*/
type WorkerError struct {
	Worker int
	Err    error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %v: %v", e.Worker, e.Err)
}

// Unwrap returns the underlying cause.
func (e *WorkerError) Unwrap() error { return e.Err }

// CheckIndex returns a *RangeError if index is outside [0, length).
func CheckIndex(index, length int) error {
	if index < 0 || index >= length {
		return &RangeError{Index: index, Len: length}
	}
	return nil
}
