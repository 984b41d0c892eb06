/*
Package workerpool runs independent tasks on a fixed number of worker
goroutines and lets the submitter wait for a known number of completions.

The pool backs matrix multiplication in package matmul and is not meant as
a general-purpose executor.

Basic usage:

	pool, err := workerpool.New(4)
	if err != nil {
		return err
	}
	defer func() { <-pool.Shutdown() }()

	for _, job := range jobs {
		job := job
		pool.Submit(workerpool.TaskFunc(func(ctx context.Context) error {
			return job.Run()
		}))
	}

	if err := pool.AwaitCount(ctx, int64(len(jobs))); err != nil {
		return err // errors.IsCanceled(err) when ctx ended first
	}

Queueing:

Submit appends to an unbounded FIFO queue and never blocks. Workers take
tasks from the head of the queue; which worker runs a task, and the order
in which tasks finish, are unspecified.

Completion Latch:

AwaitCount(ctx, n) blocks until n tasks have completed. Every task counts
once it finishes, whether it returned an error or panicked, so a waiter is
never stranded by a failing task. A canceled context abandons the wait with
an error wrapping errors.ErrCanceled; the tasks keep running.

Shutdown:

	<-pool.Shutdown()    // run queued tasks, then stop workers
	<-pool.ShutdownNow() // drop queued tasks, cancel running ones, stop workers

Both return a channel that closes once every worker goroutine has exited.
Pending AwaitCount calls that can no longer be satisfied return an error
wrapping errors.ErrClosed.

Lifecycle Callbacks:

Config exposes OnWorkerStart, OnWorkerStop, OnTaskStart and OnTaskComplete.
OnTaskComplete runs before the completion is counted, so state it records is
visible to the goroutine that returns from AwaitCount.

Thread Safety:

All pool operations are safe for concurrent use from multiple goroutines.
*/
package workerpool
