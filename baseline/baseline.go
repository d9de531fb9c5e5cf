/*
Package baseline provides implementations of reduction and
scatter-accumulation that share a single accumulator between all
workers, and synchronize every write with an atomic operation or a
mutex.

These implementations are correct, but every element causes contention
on the shared accumulator, which makes them much slower than the
functions in package parallel as soon as there is more than one worker.
Atomic floating-point accumulation is also not deterministic, because
the order of additions depends on timing. They are provided only as
baselines for benchmarks and as a point of reference in tests, and
should not be used otherwise.
*/
package baseline

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/exascience/preduce"
	"github.com/exascience/preduce/internal"
)

// forEach calls f for each index of [0, n), divided statically among
// the given number of workers, and waits for all of them.
func forEach(n, workers int, f func(i int) error) error {
	if err := preduce.StaticSchedule(workers).Validate(); err != nil {
		return err
	}
	var (
		wg    sync.WaitGroup
		once  sync.Once
		first error
		stop  atomic.Bool
	)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		low, high := internal.StaticRange(n, workers, w)
		go func(w, low, high int) {
			defer wg.Done()
			for i := low; i < high && !stop.Load(); i++ {
				if err := f(i); err != nil {
					once.Do(func() { first = &preduce.WorkerError{Worker: w, Err: err} })
					stop.Store(true)
					return
				}
			}
		}(w, low, high)
	}
	wg.Wait()
	return first
}

func checkUpdates[T preduce.Number](dst []T, updates []preduce.Update[T]) error {
	for _, u := range updates {
		if err := preduce.CheckIndex(u.Index, len(dst)); err != nil {
			return &preduce.WorkerError{Worker: 0, Err: err}
		}
	}
	return nil
}

// ReduceInt64 sums data by adding every element to one shared counter
// with atomic.AddInt64.
func ReduceInt64(data []int64, workers int) (int64, error) {
	var sum int64
	err := forEach(len(data), workers, func(i int) error {
		atomic.AddInt64(&sum, data[i])
		return nil
	})
	if err != nil {
		return 0, err
	}
	return atomic.LoadInt64(&sum), nil
}

func addFloat64(addr *uint64, delta float64) {
	for {
		old := atomic.LoadUint64(addr)
		sum := math.Float64bits(math.Float64frombits(old) + delta)
		if atomic.CompareAndSwapUint64(addr, old, sum) {
			return
		}
	}
}

// ScatterFloat64 adds each update's value to dst at the update's index,
// with a compare-and-swap loop on the shared destination slot for every
// update.
//
// If any index is out of range, ScatterFloat64 returns a
// *preduce.WorkerError wrapping a *preduce.RangeError, and dst is left
// unchanged.
func ScatterFloat64(dst []float64, updates []preduce.Update[float64], workers int) error {
	if err := checkUpdates(dst, updates); err != nil {
		return err
	}
	bits := make([]uint64, len(dst))
	for i, x := range dst {
		bits[i] = math.Float64bits(x)
	}
	err := forEach(len(updates), workers, func(i int) error {
		u := updates[i]
		addFloat64(&bits[u.Index], u.Value)
		return nil
	})
	if err != nil {
		return err
	}
	for i, b := range bits {
		dst[i] = math.Float64frombits(b)
	}
	return nil
}

// ScatterLocked adds each update's value to dst at the update's index,
// holding one mutex around every write.
//
// If any index is out of range, ScatterLocked returns a
// *preduce.WorkerError wrapping a *preduce.RangeError, and dst is left
// unchanged.
func ScatterLocked[T preduce.Number](dst []T, updates []preduce.Update[T], workers int) error {
	if err := checkUpdates(dst, updates); err != nil {
		return err
	}
	var mutex sync.Mutex
	return forEach(len(updates), workers, func(i int) error {
		u := updates[i]
		mutex.Lock()
		dst[u.Index] += u.Value
		mutex.Unlock()
		return nil
	})
}
