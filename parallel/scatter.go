package parallel

import (
	"context"
	"fmt"

	"github.com/exascience/preduce"
	"github.com/exascience/preduce/internal"
)

// ScatterAccumulate adds each update's value to dst at the update's
// index, using the given number of workers and the Static policy.
//
// Several updates may target the same index. Each worker scatters into
// a private row of the same length as dst, and the rows are added to dst
// in ascending worker order once all workers are done. This needs
// memory proportional to workers * len(dst).
//
// If any update has an index outside [0, len(dst)), ScatterAccumulate
// returns a *preduce.WorkerError that wraps a *preduce.RangeError, and
// dst is left unchanged.
func ScatterAccumulate[T preduce.Number](dst []T, updates []preduce.Update[T], workers int) error {
	return ScatterAccumulateContext(context.Background(), dst, updates, preduce.StaticSchedule(workers))
}

// ScatterAccumulateContext is like ScatterAccumulate, but divides the
// updates according to the given schedule, and stops early when ctx is
// canceled.
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

/*
ScatterRange divides the source indices [0, n) among the workers of s,
and calls body for each of them with the private accumulator of the
calling worker. Once all workers are done, the accumulators are added
to dst in ascending worker order.

ScatterRange is the general form of ScatterAccumulate, for sources that
produce several updates per index, such as the columns of a sparse
matrix.

If body returns an error or panics, the remaining workers stop,
ScatterRange returns a *preduce.WorkerError wrapping the first such
error, and dst is left unchanged.
*/
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
	accs := make([]preduce.Accumulator[T], s.Workers)
	err := execute(ctx, n, s, func(r *run, w int, c *internal.Claimer) error {
		acc := &accs[w]
		acc.Reset(len(dst))
		for low, high, ok := c.Next(); ok; low, high, ok = c.Next() {
			for i := low; i < high; i++ {
				if r.stopped() {
					return errStopped
				}
				if err := body(i, acc); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for w := range accs {
		accs[w].AddTo(dst)
	}
	return nil
}

/*
ScatterByDestination adds each update's value to dst at the update's
index, but divides the destination rather than the updates among the
workers of s. Each worker owns a disjoint range of dst and scans all
updates, applying only those that fall into its range.

Compared to ScatterAccumulate, this needs memory proportional to
len(dst) instead of workers * len(dst), but reads every update once
per claimed range. It pays off when dst is large and the updates are
few. The updates to each slot are summed in update order into a zeroed
scratch row, which is then added to dst, so the result is the same as
that of sequential.ScatterAccumulate for every schedule.

If any update has an index outside [0, len(dst)), ScatterByDestination
returns a *preduce.WorkerError of worker 0 that wraps a
*preduce.RangeError, before any worker is started. In all error cases,
dst is left unchanged.
*/
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
	scratch := make([]T, len(dst))
	err := execute(ctx, len(dst), s, func(r *run, _ int, c *internal.Claimer) error {
		for low, high, ok := c.Next(); ok; low, high, ok = c.Next() {
			if low == high {
				continue
			}
			for _, u := range updates {
				if r.stopped() {
					return errStopped
				}
				if low <= u.Index && u.Index < high {
					scratch[u.Index] += u.Value
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for i, x := range scratch {
		dst[i] += x
	}
	return nil
}
