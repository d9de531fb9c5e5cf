//go:build !race

package parallel_test

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/exascience/preduce/internal"
	"github.com/exascience/preduce/parallel"
)

// racySum adds all elements to one accumulator that is shared between
// all workers without any synchronization. It is incorrect, and only
// exists to show the lost updates that parallel.Reduce avoids.
func racySum(data []int64, workers int) int64 {
	var acc int64
	var wg sync.WaitGroup
	start := make(chan struct{})
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		low, high := internal.StaticRange(len(data), workers, w)
		go func(low, high int) {
			defer wg.Done()
			<-start
			for i := low; i < high; i++ {
				acc += data[i]
			}
		}(low, high)
	}
	close(start)
	wg.Wait()
	return acc
}

func TestRacySharedAccumulatorLosesUpdates(t *testing.T) {
	if runtime.GOMAXPROCS(0) < 4 {
		defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(4))
	}
	const n, workers, runs = 1 << 22, 64, 50
	data := make([]int64, n)
	for i := range data {
		data[i] = 1
	}

	for run := 0; run < runs; run++ {
		if racySum(data, workers) != n {
			sum, err := parallel.Reduce(data, func(x, y int64) int64 { return x + y }, 0, workers)
			require.NoError(t, err)
			require.Equal(t, int64(n), sum)
			return
		}
	}
	t.Fatalf("racy sum was correct in all %v runs", runs)
}
