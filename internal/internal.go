package internal

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/exascience/preduce"
)

// DefaultWorkers returns runtime.GOMAXPROCS(0).
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// StaticRange returns the range of worker w when [0, n) is divided among
// workers. Ranges of consecutive workers are adjacent, and their sizes
// differ by at most one.
func StaticRange(n, workers, w int) (low, high int) {
	if workers <= 0 || w < 0 || w >= workers {
		panic(fmt.Sprintf("invalid worker %v of %v", w, workers))
	}
	return int(int64(n) * int64(w) / int64(workers)), int(int64(n) * int64(w+1) / int64(workers))
}

// A Cursor hands out consecutive chunks of [0, n) to concurrent
// claimants. Every index is handed out exactly once.
type Cursor struct {
	next  atomic.Int64
	n     int64
	chunk int64
}

// NewCursor returns a cursor over [0, n) with the given chunk size.
// Chunks larger than n are clamped to n, so that concurrent claims
// cannot overflow the shared position.
func NewCursor(n, chunk int) *Cursor {
	if chunk <= 0 {
		panic(fmt.Sprintf("invalid chunk size: %v", chunk))
	}
	if n > 0 && chunk > n {
		chunk = n
	}
	return &Cursor{n: int64(n), chunk: int64(chunk)}
}

// Claim returns the next chunk, or ok == false if the range is
// exhausted.
func (c *Cursor) Claim() (low, high int, ok bool) {
	if c.next.Load() >= c.n {
		return 0, 0, false
	}
	end := c.next.Add(c.chunk)
	start := end - c.chunk
	if start >= c.n {
		return 0, 0, false
	}
	if end > c.n {
		end = c.n
	}
	return int(start), int(end), true
}

/*
A Claimer yields the index ranges of one worker.

Under the Static policy, a claimer yields exactly one range, which may be
empty. Under the Dynamic policy, all claimers of the same operation
share one Cursor.
*/
type Claimer struct {
	low, high int
	claimed   bool
	cursor    *Cursor
}

// Claimers returns one claimer per worker of s for the range [0, n). The
// schedule must be valid.
func Claimers(n int, s preduce.Schedule) []Claimer {
	claimers := make([]Claimer, s.Workers)
	switch s.Policy {
	case preduce.Static:
		for w := range claimers {
			claimers[w].low, claimers[w].high = StaticRange(n, s.Workers, w)
		}
	case preduce.Dynamic:
		cursor := NewCursor(n, s.EffectiveChunk(n))
		for w := range claimers {
			claimers[w].cursor = cursor
		}
	default:
		panic(fmt.Sprintf("unknown policy: %v", s.Policy))
	}
	return claimers
}

// Next returns the next range of this worker, or ok == false if there is
// none left.
func (c *Claimer) Next() (low, high int, ok bool) {
	if c.cursor != nil {
		return c.cursor.Claim()
	}
	if c.claimed {
		return 0, 0, false
	}
	c.claimed = true
	return c.low, c.high, true
}

type outOfRange struct{ error }

func (e outOfRange) Unwrap() error { return e.error }

func (outOfRange) Is(target error) bool { return target == preduce.ErrOutOfRange }

// WrapPanic turns a recovered panic into an error that records the
// stack trace of the panicking goroutine. Runtime errors for indices or
// slice bounds out of range additionally match preduce.ErrOutOfRange.
func WrapPanic(p interface{}) error {
	if p == nil {
		return nil
	}
	err, isError := p.(error)
	if !isError {
		return errors.Errorf("panic: %v", p)
	}
	if rerr, isRuntimeError := err.(runtime.Error); isRuntimeError && strings.Contains(rerr.Error(), "out of range") {
		err = outOfRange{rerr}
	}
	return errors.WithStack(err)
}
