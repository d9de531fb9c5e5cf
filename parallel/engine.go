package parallel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/exascience/preduce"
	"github.com/exascience/preduce/internal"
)

// errStopped is returned by a worker that observed the stop flag.
var errStopped = errors.New("stopped")

// A run holds the state that the workers of one operation share: the
// stop flag and the first fault.
type run struct {
	stop        atomic.Bool
	interrupted atomic.Bool
	once        sync.Once
	err         error
}

// stopped is checked by workers between elements.
func (r *run) stopped() bool {
	return r.stop.Load()
}

// fail records err unless another fault was recorded first, and tells
// all workers to stop.
func (r *run) fail(err error) {
	r.once.Do(func() {
		r.err = err
	})
	r.stop.Store(true)
}

func (r *run) work(w int, claimer *internal.Claimer, task func(r *run, w int, c *internal.Claimer) error) {
	defer func() {
		if p := recover(); p != nil {
			r.fail(&preduce.WorkerError{Worker: w, Err: internal.WrapPanic(p)})
		}
	}()
	if err := task(r, w, claimer); err != nil {
		if errors.Is(err, errStopped) {
			r.interrupted.Store(true)
			return
		}
		r.fail(&preduce.WorkerError{Worker: w, Err: err})
	}
}

/*
execute invokes task once per worker of s, each in its own goroutine,
and returns only when all of them have returned. Worker w draws its
ranges of [0, n) from the w-th claimer.

Workers are forked by recursively halving the range of worker indices.
A task that returns an error or panics stops its siblings, which observe
the stop flag between elements, and the first such fault is returned as
a *preduce.WorkerError. If ctx is canceled before all workers finish,
the workers are stopped as well, and ctx.Err() is returned.
*/
func execute(
	ctx context.Context,
	n int, s preduce.Schedule,
	task func(r *run, w int, c *internal.Claimer) error,
) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r := new(run)
	stopAfter := context.AfterFunc(ctx, func() { r.stop.Store(true) })
	defer stopAfter()

	claimers := internal.Claimers(n, s)
	var recur func(low, high int)
	recur = func(low, high int) {
		switch size := high - low; {
		case size == 1:
			r.work(low, &claimers[low], task)
		case size > 1:
			half := low + size/2
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				recur(half, high)
			}()
			recur(low, half)
			wg.Wait()
		}
	}
	recur(0, s.Workers)

	if r.err != nil {
		return r.err
	}
	if r.interrupted.Load() {
		if err := ctx.Err(); err != nil {
			return err
		}
		return context.Canceled
	}
	return nil
}

// DefaultWorkers returns the number of workers that matches the
// available hardware parallelism, which is runtime.GOMAXPROCS(0).
func DefaultWorkers() int {
	return internal.DefaultWorkers()
}
