/*
Package sparse provides matrices in compressed sparse column (CSC)
format, and their products with dense vectors.

In a CSC matrix-vector product y = A x, every stored entry of column j
contributes Val[k] * x[j] to y[RowIdx[k]]. Entries from different
columns may contribute to the same element of y, so the parallel product
divides the columns among the workers and uses parallel.ScatterRange, in
which every worker accumulates into a private copy of y.

A *CSC implements the gonum.org/v1/gonum/mat.Matrix interface, so it can
be used as an operand wherever gonum accepts a read-only matrix.
*/
package sparse

import (
	"context"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/exascience/preduce"
	"github.com/exascience/preduce/parallel"
)

/*
A CSC is a sparse matrix in compressed sparse column format.

The stored entries of column j are Val[ColPtr[j]:ColPtr[j+1]], in rows
RowIdx[ColPtr[j]:ColPtr[j+1]]. Row indices are strictly increasing
within each column.
*/
type CSC struct {
	Rows, Cols int
	ColPtr     []int
	RowIdx     []int
	Val        []float64
}

var _ mat.Matrix = (*CSC)(nil)

// NewCSC returns a CSC matrix for the given arrays, which are used
// without copying.
//
// NewCSC returns an error wrapping preduce.ErrInvalidArgument if the
// dimensions or the column pointers are malformed, or if row indices are
// not strictly increasing within a column, and an error wrapping
// preduce.ErrOutOfRange if a row index is outside [0, rows).
func NewCSC(rows, cols int, colPtr, rowIdx []int, val []float64) (*CSC, error) {
	switch {
	case rows < 0 || cols < 0:
		return nil, fmt.Errorf("%w: invalid dimensions: %vx%v", preduce.ErrInvalidArgument, rows, cols)
	case len(colPtr) != cols+1:
		return nil, fmt.Errorf("%w: %v column pointers for %v columns", preduce.ErrInvalidArgument, len(colPtr), cols)
	case len(rowIdx) != len(val):
		return nil, fmt.Errorf("%w: %v row indices for %v values", preduce.ErrInvalidArgument, len(rowIdx), len(val))
	case colPtr[0] != 0 || colPtr[cols] != len(val):
		return nil, fmt.Errorf("%w: column pointers must span [0:%v]", preduce.ErrInvalidArgument, len(val))
	}
	for j := 0; j < cols; j++ {
		if colPtr[j+1] < colPtr[j] {
			return nil, fmt.Errorf("%w: decreasing column pointer at column %v", preduce.ErrInvalidArgument, j)
		}
	}
	for j := 0; j < cols; j++ {
		low, high := colPtr[j], colPtr[j+1]
		for k := low; k < high; k++ {
			if err := preduce.CheckIndex(rowIdx[k], rows); err != nil {
				return nil, fmt.Errorf("column %v: %w", j, err)
			}
			if k > low && rowIdx[k] <= rowIdx[k-1] {
				return nil, fmt.Errorf("%w: unsorted row indices in column %v", preduce.ErrInvalidArgument, j)
			}
		}
	}
	return &CSC{Rows: rows, Cols: cols, ColPtr: colPtr, RowIdx: rowIdx, Val: val}, nil
}

// FromMatrix returns the CSC representation of m, storing only its
// non-zero entries.
func FromMatrix(m mat.Matrix) *CSC {
	rows, cols := m.Dims()
	a := &CSC{Rows: rows, Cols: cols, ColPtr: make([]int, cols+1)}
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			if v := m.At(i, j); v != 0 {
				a.RowIdx = append(a.RowIdx, i)
				a.Val = append(a.Val, v)
			}
		}
		a.ColPtr[j+1] = len(a.Val)
	}
	return a
}

// NNZ returns the number of stored entries.
func (a *CSC) NNZ() int {
	return len(a.Val)
}

// Dims returns the number of rows and columns of a.
func (a *CSC) Dims() (r, c int) {
	return a.Rows, a.Cols
}

// At returns the element of a at row i, column j. It panics if i or j
// are out of range.
func (a *CSC) At(i, j int) float64 {
	if uint(i) >= uint(a.Rows) || uint(j) >= uint(a.Cols) {
		panic(mat.ErrIndexOutOfRange)
	}
	low, high := a.ColPtr[j], a.ColPtr[j+1]
	rows := a.RowIdx[low:high]
	if k := sort.SearchInts(rows, i); k < len(rows) && rows[k] == i {
		return a.Val[low+k]
	}
	return 0
}

// T returns the transpose of a, without copying.
func (a *CSC) T() mat.Matrix {
	return mat.Transpose{Matrix: a}
}

// ToDense returns a dense copy of a.
func (a *CSC) ToDense() *mat.Dense {
	if a.Rows == 0 || a.Cols == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(a.Rows, a.Cols, nil)
	for j := 0; j < a.Cols; j++ {
		for k := a.ColPtr[j]; k < a.ColPtr[j+1]; k++ {
			d.Set(a.RowIdx[k], j, a.Val[k])
		}
	}
	return d
}

func (a *CSC) checkDims(y, x []float64) error {
	if len(x) != a.Cols {
		return fmt.Errorf("%w: vector of length %v for %v columns", preduce.ErrInvalidArgument, len(x), a.Cols)
	}
	if len(y) != a.Rows {
		return fmt.Errorf("%w: vector of length %v for %v rows", preduce.ErrInvalidArgument, len(y), a.Rows)
	}
	return nil
}

// MulVec returns the product A x, computed sequentially. It panics if
// len(x) != a.Cols.
func (a *CSC) MulVec(x []float64) []float64 {
	y := make([]float64, a.Rows)
	if err := a.checkDims(y, x); err != nil {
		panic(err)
	}
	for j, xj := range x {
		for k := a.ColPtr[j]; k < a.ColPtr[j+1]; k++ {
			y[a.RowIdx[k]] += a.Val[k] * xj
		}
	}
	return y
}

// MulVecTo adds the product A x to y, dividing the columns of A among
// the workers of s. Each worker accumulates into a private vector of
// length a.Rows, and these are added to y once all workers are done.
//
// MulVecTo returns an error wrapping preduce.ErrInvalidArgument if the
// lengths of y and x do not match the dimensions of a. If the structure
// of a has been corrupted after construction so that a row index is out
// of range, it returns a *preduce.WorkerError and leaves y unchanged.
func (a *CSC) MulVecTo(ctx context.Context, y, x []float64, s preduce.Schedule) error {
	if err := a.checkDims(y, x); err != nil {
		return err
	}
	return parallel.ScatterRange(ctx, y, a.Cols, s, func(j int, acc *preduce.Accumulator[float64]) error {
		xj := x[j]
		for k := a.ColPtr[j]; k < a.ColPtr[j+1]; k++ {
			if err := acc.Add(a.RowIdx[k], a.Val[k]*xj); err != nil {
				return err
			}
		}
		return nil
	})
}
