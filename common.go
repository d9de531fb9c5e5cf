package preduce

import "fmt"

type (
	// Number is the set of element types that scatter-accumulation and
	// the baselines can add together with the + operator.
	Number interface {
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
			~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
			~float32 | ~float64 | ~complex64 | ~complex128
	}

	// An Update adds Value to the destination slot at Index.
	Update[T any] struct {
		Index int
		Value T
	}

	// A Policy determines how an index range is divided among workers.
	Policy int

	/*
	  A Schedule describes how many workers execute an operation, and how
	  the input is divided up among them.

	  Workers must be at least 1. Use DefaultWorkers in package parallel
	  to obtain the available hardware parallelism.

	  Chunk is only used by the Dynamic policy, and is the number of
	  consecutive indices a worker claims at a time. If Chunk is 0, a
	  default is used that yields about four chunks per worker.

	  The zero Schedule is not valid, because it has no workers.
	*/
	Schedule struct {
		Workers int
		Policy  Policy
		Chunk   int
	}
)

const (
	// Static assigns each worker one contiguous range, with sizes that
	// differ by at most one element. This is the default.
	Static Policy = iota

	// Dynamic lets workers repeatedly claim chunks of indices from a
	// shared cursor, which balances the load when the cost per element
	// varies.
	Dynamic
)

func (p Policy) String() string {
	switch p {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// StaticSchedule returns a schedule that divides the input evenly among
// the given number of workers.
func StaticSchedule(workers int) Schedule {
	return Schedule{Workers: workers, Policy: Static}
}

// DynamicSchedule returns a schedule in which the given number of
// workers claim chunks of the given size until the input is exhausted.
func DynamicSchedule(workers, chunk int) Schedule {
	return Schedule{Workers: workers, Policy: Dynamic, Chunk: chunk}
}

// Validate reports an error wrapping ErrInvalidArgument if s cannot be
// executed.
func (s Schedule) Validate() error {
	switch {
	case s.Workers <= 0:
		return fmt.Errorf("%w: invalid number of workers: %v", ErrInvalidArgument, s.Workers)
	case s.Chunk < 0:
		return fmt.Errorf("%w: invalid chunk size: %v", ErrInvalidArgument, s.Chunk)
	case s.Policy != Static && s.Policy != Dynamic:
		return fmt.Errorf("%w: unknown policy: %v", ErrInvalidArgument, s.Policy)
	}
	return nil
}

// EffectiveChunk returns the chunk size that the Dynamic policy uses
// for an input of size n: s.Chunk if it is positive, or otherwise
// ceiling(n / (4 * s.Workers)), but at least 1.
func (s Schedule) EffectiveChunk(n int) int {
	if s.Chunk > 0 {
		return s.Chunk
	}
	if n <= 0 || s.Workers <= 0 {
		return 1
	}
	return ((n - 1) / (4 * s.Workers)) + 1
}
