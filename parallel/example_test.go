package parallel_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/exascience/preduce"
	"github.com/exascience/preduce/parallel"
)

func ExampleReduce() {
	sum, err := parallel.Reduce(
		[]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		func(x, y int) int { return x + y },
		0, 4,
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(sum)

	// Output:
	// 55
}

func ExampleMapReduce() {
	numDivisors := func(n int) (int, error) {
		return parallel.MapReduce(
			context.Background(),
			n, preduce.StaticSchedule(runtime.GOMAXPROCS(0)),
			func(i int) (int, error) {
				if (n % (i + 1)) == 0 {
					return 1, nil
				}
				return 0, nil
			},
			func(x, y int) int { return x + y },
			0,
		)
	}

	fmt.Println(numDivisors(12))

	// Output:
	// 6 <nil>
}

func ExampleMapReduce_sqrtSum() {
	sqrtSum, err := parallel.MapReduce(
		context.Background(),
		100, preduce.DynamicSchedule(4, 8),
		func(i int) (float64, error) {
			return math.Sqrt(float64(i + 1)), nil
		},
		func(x, y float64) float64 { return x + y },
		0,
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.3f\n", sqrtSum)

	// Output:
	// 671.463
}

func ExampleMapReduce_error() {
	_, err := parallel.MapReduce(
		context.Background(),
		1000, preduce.StaticSchedule(4),
		func(i int) (float64, error) {
			if i == 500 {
				return 0, errors.New("negative argument")
			}
			return math.Sqrt(float64(i)), nil
		},
		func(x, y float64) float64 { return x + y },
		0,
	)
	fmt.Println(err)

	// Output:
	// worker 2: negative argument
}

func ExampleScatterAccumulate() {
	dst := make([]int, 2)
	updates := []preduce.Update[int]{
		{Index: 0, Value: 1},
		{Index: 1, Value: 2},
		{Index: 0, Value: 3},
		{Index: 1, Value: 4},
	}
	if err := parallel.ScatterAccumulate(dst, updates, 2); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(dst)

	// Output:
	// [4 6]
}

func ExampleScatterAccumulate_outOfRange() {
	dst := make([]int, 2)
	err := parallel.ScatterAccumulate(dst, []preduce.Update[int]{{Index: 5, Value: 1}}, 2)
	fmt.Println(err)
	fmt.Println(errors.Is(err, preduce.ErrOutOfRange), dst)

	// Output:
	// worker 1: index 5 out of range [0:2]
	// true [0 0]
}
