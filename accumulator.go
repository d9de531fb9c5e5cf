package preduce

/*
An Accumulator is a private destination row during a
scatter-accumulation. It has the same length as the destination, and
only the worker that owns it may call Add.

The row is allocated on the first Add, so workers that receive no
updates do not use any memory.
*/
type Accumulator[T Number] struct {
	row []T
	n   int
}

// NewAccumulator returns an empty accumulator for a destination of
// length n.
func NewAccumulator[T Number](n int) *Accumulator[T] {
	return &Accumulator[T]{n: n}
}

// Reset prepares a for a destination of length n, discarding its
// contents.
func (a *Accumulator[T]) Reset(n int) {
	a.row, a.n = nil, n
}

// Add adds value to the slot at index. It returns a *RangeError if index
// is outside the bounds of the destination.
func (a *Accumulator[T]) Add(index int, value T) error {
	if err := CheckIndex(index, a.n); err != nil {
		return err
	}
	if a.row == nil {
		a.row = make([]T, a.n)
	}
	a.row[index] += value
	return nil
}

// Len returns the length of the destination.
func (a *Accumulator[T]) Len() int {
	return a.n
}

// AddTo adds the accumulated values to dst, which must have at least
// a.Len() elements.
func (a *Accumulator[T]) AddTo(dst []T) {
	for i, x := range a.row {
		dst[i] += x
	}
}
