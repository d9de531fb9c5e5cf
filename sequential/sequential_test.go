package sequential

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/preduce"
)

func TestReduce(t *testing.T) {
	concat := func(x, y string) string { return x + y }
	result, err := Reduce([]string{"a", "b", "c", "d"}, concat, "", 3)
	require.NoError(t, err)
	assert.Equal(t, "abcd", result)

	result, err = Reduce(nil, concat, "", 3)
	require.NoError(t, err)
	assert.Equal(t, "", result)

	_, err = Reduce([]string{"a"}, concat, "", 0)
	assert.ErrorIs(t, err, preduce.ErrInvalidArgument)
}

func TestMapReduceError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	_, err := MapReduce(context.Background(), 10, preduce.StaticSchedule(1), func(i int) (int, error) {
		calls++
		if i == 3 {
			return 0, boom
		}
		return i, nil
	}, func(x, y int) int { return x + y }, 0)

	var werr *preduce.WorkerError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, 0, werr.Worker)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 4, calls)
}

func TestSum(t *testing.T) {
	assert.Equal(t, 10, Sum([]int{1, 2, 3, 4}))
	assert.Equal(t, 0.0, Sum([]float64{}))
	assert.Equal(t, complex(1, 2), Sum([]complex128{1, 2i}))
}

func TestScatterAccumulate(t *testing.T) {
	dst := []int{1, 2}
	updates := []preduce.Update[int]{{Index: 1, Value: 5}, {Index: 0, Value: 1}, {Index: 1, Value: 5}}
	require.NoError(t, ScatterAccumulate(dst, updates, 2))
	assert.Equal(t, []int{2, 12}, dst)

	err := ScatterAccumulate(dst, []preduce.Update[int]{{Index: 0, Value: 1}, {Index: 2, Value: 1}}, 2)
	assert.ErrorIs(t, err, preduce.ErrOutOfRange)
	assert.Equal(t, []int{2, 12}, dst)
}

func TestScatterAccumulateContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dst := []int{1, 2}
	err := ScatterAccumulateContext(ctx, dst, []preduce.Update[int]{{Index: 0, Value: 1}}, preduce.DynamicSchedule(2, 1))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{1, 2}, dst)
}

func TestScatterByDestination(t *testing.T) {
	dst := []float64{1, 0}
	updates := []preduce.Update[float64]{{Index: 0, Value: 1e-16}, {Index: 1, Value: 3}, {Index: 0, Value: 1e-16}}
	require.NoError(t, ScatterByDestination(context.Background(), dst, updates, preduce.StaticSchedule(4)))
	assert.Equal(t, []float64{1 + 2e-16, 3}, dst)

	err := ScatterByDestination(context.Background(), dst, []preduce.Update[float64]{{Index: -1, Value: 1}}, preduce.StaticSchedule(4))
	var werr *preduce.WorkerError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, 0, werr.Worker)
	assert.ErrorIs(t, err, preduce.ErrOutOfRange)
	assert.Equal(t, []float64{1 + 2e-16, 3}, dst)

	err = ScatterByDestination(context.Background(), dst, updates, preduce.StaticSchedule(0))
	assert.ErrorIs(t, err, preduce.ErrInvalidArgument)
}
