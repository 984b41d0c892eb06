/*
Package matmul multiplies integer matrices by fanning out one task per
output cell to a fixed-size worker pool.

A Multiplier is created for a pair of compatible matrices and run once:

	m, err := matmul.New(left, right, 8)
	if err != nil {
		return err
	}
	result, report, err := m.Multiply(ctx)

Each cell task computes the dot product of one row of left with one column
of right, writes it into its own slot of the result and appends a
TimingSample. Slots are disjoint, so the result needs no locking. The
sample collection is shared and guarded.

Multiply blocks until every cell has completed. When ctx ends first the
pool is stopped, its workers have exited by the time Multiply returns, and
the error satisfies errors.IsCanceled. No partial result is returned.

# Timing

TimingReport carries three figures:

  - WallClock: elapsed time from the start of the run until the last cell completed
  - SumOfTasks: the sum of every cell's own duration
  - ReportedTotal: WallClock + SumOfTasks

ReportedTotal counts concurrent work twice and is not an elapsed time.
Use WallClock for latency and SumOfTasks for aggregate work.

Integer overflow wraps using Go's int arithmetic.
*/
package matmul
