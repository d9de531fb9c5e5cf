// Package sequential provides sequential implementations of the
// functions provided by the parallel package. This is useful for
// testing and debugging.
//
// The functions validate their arguments like their parallel
// counterparts, and report faults as a *preduce.WorkerError of worker
// 0, but they process all elements in order in the calling goroutine.
// Panics are not recovered.
package sequential

import (
	"context"
	"fmt"

	"github.com/exascience/preduce"
)

// Reduce combines all elements of data with op, from left to right,
// starting with identity. The workers parameter is validated, but
// otherwise ignored.
func Reduce[T any](data []T, op func(x, y T) T, identity T, workers int) (T, error) {
	return ReduceContext(context.Background(), data, op, identity, preduce.StaticSchedule(workers))
}

// ReduceContext is like Reduce, but stops early when ctx is canceled.
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
	return MapReduce(ctx, len(data), s, func(i int) (T, error) { return data[i], nil }, op, identity)
}

// MapReduce computes f(i) for each i in [0, n) in ascending order, and
// combines the results with op, starting with identity.
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
	acc := identity
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			return result, err
		}
		x, ferr := f(i)
		if ferr != nil {
			return result, &preduce.WorkerError{Worker: 0, Err: ferr}
		}
		acc = op(acc, x)
	}
	return acc, nil
}

// Range calls f once for the whole range [0, n), unless n == 0.
func Range(ctx context.Context, n int, s preduce.Schedule, f func(low, high int) error) error {
	switch {
	case n < 0:
		return fmt.Errorf("%w: invalid range size: %v", preduce.ErrInvalidArgument, n)
	case f == nil:
		return fmt.Errorf("%w: nil function", preduce.ErrInvalidArgument)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	if err := f(0, n); err != nil {
		return &preduce.WorkerError{Worker: 0, Err: err}
	}
	return nil
}

// Sum returns the sum of all elements of data, from left to right.
func Sum[T preduce.Number](data []T) (sum T) {
	for _, x := range data {
		sum += x
	}
	return
}

// ScatterAccumulate adds each update's value to dst at the update's
// index, in update order. If any index is out of range, dst is left
// unchanged.
func ScatterAccumulate[T preduce.Number](dst []T, updates []preduce.Update[T], workers int) error {
	return ScatterAccumulateContext(context.Background(), dst, updates, preduce.StaticSchedule(workers))
}

// ScatterAccumulateContext is like ScatterAccumulate, but stops early
// when ctx is canceled.
func ScatterAccumulateContext[T preduce.Number](
	ctx context.Context,
	dst []T,
	updates []preduce.Update[T],
	s preduce.Schedule,
) error {
	return ScatterRange(ctx, dst, len(updates), s, func(i int, acc *preduce.Accumulator[T]) error {
		u := updates[i]
		return acc.Add(u.Index, u.Value)
	})
}

// ScatterByDestination checks all indices before applying any update,
// and then behaves like ScatterAccumulateContext.
func ScatterByDestination[T preduce.Number](
	ctx context.Context,
	dst []T,
	updates []preduce.Update[T],
	s preduce.Schedule,
) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for _, u := range updates {
		if err := preduce.CheckIndex(u.Index, len(dst)); err != nil {
			return &preduce.WorkerError{Worker: 0, Err: err}
		}
	}
	return ScatterAccumulateContext(ctx, dst, updates, s)
}

// ScatterRange calls body for each i in [0, n) in ascending order, with
// a single accumulator that is added to dst only if no error occurs.
func ScatterRange[T preduce.Number](
	ctx context.Context,
	dst []T,
	n int, s preduce.Schedule,
	body func(i int, acc *preduce.Accumulator[T]) error,
) error {
	switch {
	case n < 0:
		return fmt.Errorf("%w: invalid range size: %v", preduce.ErrInvalidArgument, n)
	case body == nil:
		return fmt.Errorf("%w: nil function", preduce.ErrInvalidArgument)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	acc := preduce.NewAccumulator[T](len(dst))
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := body(i, acc); err != nil {
			return &preduce.WorkerError{Worker: 0, Err: err}
		}
	}
	acc.AddTo(dst)
	return nil
}
