// Package preduce provides race-free parallel reductions and
// scatter-accumulations over slices. Every worker goroutine folds its
// share of the input into a private partial accumulator, and the
// partials are combined once, in worker order, after all workers have
// joined. Workers never write to shared memory while they run, so
// neither locks nor atomics are needed on the hot path.
//
// Preduce provides the following subpackages:
//
// preduce/parallel provides the partitioned parallel reducer: Reduce,
// MapReduce, ScatterAccumulate, and their variants with explicit
// schedules and contexts.
//
// preduce/sequential provides sequential implementations of the
// functions from preduce/parallel, for testing and debugging purposes.
//
// preduce/baseline provides atomic and mutex based implementations of
// the same operations. They are correct, but contended, and only exist
// as a point of comparison.
//
// preduce/sparse provides compressed sparse column matrices whose
// matrix-vector product is a scatter-accumulation.
//
// The reduction operator passed to any of these functions must be
// associative and commutative, and the identity must be its neutral
// element. Partition boundaries depend on the schedule, so results for
// floating-point operands may differ in rounding between schedules,
// and between runs when the Dynamic policy is used.
package preduce
