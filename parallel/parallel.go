// Package parallel provides race-free parallel reductions and
// scatter-accumulations.
//
// All functions in this package follow the same pattern. The input is
// divided among a fixed number of workers according to a
// preduce.Schedule. Each worker folds its share into a private partial
// accumulator and does not write to shared memory until it is done.
// When all workers have joined, the calling goroutine combines the
// partial accumulators in ascending worker order.
//
// If a worker fails, by returning an error or by panicking, the other
// workers stop at the next element boundary, and the failure is
// returned exactly once as a *preduce.WorkerError after all workers
// have returned. No partial results are returned in that case.
package parallel

import (
	"context"
	"fmt"

	"github.com/exascience/preduce"
	"github.com/exascience/preduce/internal"
)

// Reduce combines all elements of data with op, using the given number
// of workers and the Static policy.
//
// The op function must be associative and commutative, and identity
// must be its neutral element. Reduce returns identity for empty data.
//
// Reduce returns an error wrapping preduce.ErrInvalidArgument if workers
// < 1, and a *preduce.WorkerError if op panics.
func Reduce[T any](data []T, op func(x, y T) T, identity T, workers int) (T, error) {
	return ReduceContext(context.Background(), data, op, identity, preduce.StaticSchedule(workers))
}

// ReduceContext is like Reduce, but executes according to the given
// schedule, and stops early when ctx is canceled.
func ReduceContext[T any](
	ctx context.Context,
	data []T,
	op func(x, y T) T,
	identity T,
	s preduce.Schedule,
) (result T, err error) {
	if op == nil {
		return result, fmt.Errorf("%w: nil operator", preduce.ErrInvalidArgument)
	}
	if err = s.Validate(); err != nil {
		return
	}
	partials := make([]T, s.Workers)
	err = execute(ctx, len(data), s, func(r *run, w int, c *internal.Claimer) error {
		acc := identity
		for low, high, ok := c.Next(); ok; low, high, ok = c.Next() {
			for _, x := range data[low:high] {
				if r.stopped() {
					return errStopped
				}
				acc = op(acc, x)
			}
		}
		partials[w] = acc
		return nil
	})
	if err != nil {
		return
	}
	return combine(partials, op, identity), nil
}

/*
MapReduce computes f(i) for each i in [0, n), and combines the results
with op.

The op function must be associative and commutative, and identity must
be its neutral element. MapReduce returns identity if n == 0.

If f returns an error or panics for some index, the remaining workers
stop, and MapReduce returns a *preduce.WorkerError that wraps the first
such error. MapReduce returns an error wrapping preduce.ErrInvalidArgument
if n < 0 or if the schedule is invalid.
*/
func MapReduce[T any](
	ctx context.Context,
	n int, s preduce.Schedule,
	f func(i int) (T, error),
	op func(x, y T) T,
	identity T,
) (result T, err error) {
	switch {
	case n < 0:
		return result, fmt.Errorf("%w: invalid range size: %v", preduce.ErrInvalidArgument, n)
	case f == nil || op == nil:
		return result, fmt.Errorf("%w: nil function", preduce.ErrInvalidArgument)
	}
	if err = s.Validate(); err != nil {
		return
	}
	partials := make([]T, s.Workers)
	err = execute(ctx, n, s, func(r *run, w int, c *internal.Claimer) error {
		acc := identity
		for low, high, ok := c.Next(); ok; low, high, ok = c.Next() {
			for i := low; i < high; i++ {
				if r.stopped() {
					return errStopped
				}
				x, err := f(i)
				if err != nil {
					return err
				}
				acc = op(acc, x)
			}
		}
		partials[w] = acc
		return nil
	})
	if err != nil {
		return
	}
	return combine(partials, op, identity), nil
}

/*
Range divides [0, n) among the workers of s, and calls f for each range
that a worker claims. The ranges are disjoint and cover [0, n) exactly
once, so f may write without synchronization to elements of a shared
slice whose indices fall into its own range.

The stop flag is checked between ranges, not within them. If f returns
an error or panics, Range returns a *preduce.WorkerError that wraps the
first such error once all workers have returned.
*/
func Range(ctx context.Context, n int, s preduce.Schedule, f func(low, high int) error) error {
	switch {
	case n < 0:
		return fmt.Errorf("%w: invalid range size: %v", preduce.ErrInvalidArgument, n)
	case f == nil:
		return fmt.Errorf("%w: nil function", preduce.ErrInvalidArgument)
	}
	return execute(ctx, n, s, func(r *run, _ int, c *internal.Claimer) error {
		for low, high, ok := c.Next(); ok; low, high, ok = c.Next() {
			if r.stopped() {
				return errStopped
			}
			if low < high {
				if err := f(low, high); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// combine folds the partial accumulators in ascending worker order.
func combine[T any](partials []T, op func(x, y T) T, identity T) T {
	result := identity
	for _, p := range partials {
		result = op(result, p)
	}
	return result
}
