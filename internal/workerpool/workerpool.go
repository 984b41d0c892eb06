package workerpool

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	mferrors "github.com/vnykmshr/matflow/pkg/common/errors"
)

// waiter is a pending AwaitCount call.
type waiter struct {
	target int64
	ch     chan struct{}
	err    error
}

// Submit enqueues a task and returns immediately. Tasks are dequeued in
// submission order, but any worker may run any task and completion order
// is not guaranteed.
func (p *Pool) Submit(task Task) error {
	if task == nil {
		return mferrors.NewValidationError("workerpool", "task", nil, "cannot be nil")
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return mferrors.NewOperationError("workerpool", "Submit", mferrors.ErrClosed).
			WithContext("worker pool has been shut down")
	}
	p.queue = append(p.queue, task)
	p.totalSubmitted++
	p.updateMetricsLocked()
	p.mu.Unlock()

	p.cond.Signal()
	return nil
}

// AwaitCount blocks until at least n tasks have completed.
//
// If ctx is done first the wait is abandoned and the returned error wraps
// both errors.ErrCanceled and ctx.Err(). If the pool stops before n tasks can
// complete, the error wraps errors.ErrClosed.
func (p *Pool) AwaitCount(ctx context.Context, n int64) error {
	p.mu.Lock()
	if p.totalCompleted >= n {
		p.mu.Unlock()
		return nil
	}
	if p.stopped {
		completed := p.totalCompleted
		p.mu.Unlock()
		return p.unreachable(completed, n)
	}
	w := &waiter{target: n, ch: make(chan struct{})}
	p.waiters = append(p.waiters, w)
	p.mu.Unlock()

	select {
	case <-w.ch:
		return w.err
	case <-ctx.Done():
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	select {
	case <-w.ch:
		return w.err
	default:
	}
	for i, other := range p.waiters {
		if other == w {
			p.waiters = append(p.waiters[:i], p.waiters[i+1:]...)
			break
		}
	}

	cause := fmt.Errorf("%w: %w", mferrors.ErrCanceled, ctx.Err())
	return mferrors.NewOperationError("workerpool", "AwaitCount", cause).
		WithContext(fmt.Sprintf("%d of %d tasks completed", p.totalCompleted, n))
}

// Shutdown stops accepting new tasks. Queued tasks still run. The returned
// channel closes once every worker has exited.
func (p *Pool) Shutdown() <-chan struct{} {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.cond.Broadcast()
	p.stop()
	return p.done
}

// ShutdownNow stops accepting new tasks, discards queued tasks that have not
// started and cancels the context of running tasks. The returned channel
// closes once every worker has exited.
func (p *Pool) ShutdownNow() <-chan struct{} {
	p.mu.Lock()
	p.closed = true
	p.totalDiscarded += int64(len(p.queue))
	p.queue = nil
	p.updateMetricsLocked()
	p.mu.Unlock()

	p.cancel()
	p.cond.Broadcast()
	p.stop()
	return p.done
}

// stop starts the goroutine that closes done after all workers exit.
func (p *Pool) stop() {
	p.stopOnce.Do(func() {
		go func() {
			p.workerWg.Wait()
			p.cancel()

			p.mu.Lock()
			p.stopped = true
			waiters := p.waiters
			p.waiters = nil
			completed := p.totalCompleted
			p.mu.Unlock()

			for _, w := range waiters {
				w.err = p.unreachable(completed, w.target)
				close(w.ch)
			}
			close(p.done)
		}()
	})
}

func (p *Pool) unreachable(completed, target int64) error {
	return mferrors.NewOperationError("workerpool", "AwaitCount", mferrors.ErrClosed).
		WithContext(fmt.Sprintf("pool stopped after %d of %d tasks completed", completed, target))
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return p.config.WorkerCount
}

// QueueSize returns the current number of queued tasks waiting for execution.
func (p *Pool) QueueSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// ActiveWorkers returns the number of workers currently executing tasks.
func (p *Pool) ActiveWorkers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activeWorkers
}

// TotalSubmitted returns the total number of tasks submitted to the pool.
func (p *Pool) TotalSubmitted() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalSubmitted
}

// TotalCompleted returns the total number of tasks completed by the pool.
func (p *Pool) TotalCompleted() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalCompleted
}

// TotalDiscarded returns the number of queued tasks dropped by ShutdownNow.
func (p *Pool) TotalDiscarded() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalDiscarded
}

// next blocks until a task is available or the pool is closed and drained.
func (p *Pool) next() (Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 && !p.closed {
		p.cond.Wait()
	}
	if len(p.queue) == 0 {
		return nil, false
	}

	task := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	if len(p.queue) == 0 {
		p.queue = nil
	}
	p.activeWorkers++
	p.updateMetricsLocked()
	return task, true
}

// complete records one finished task and releases satisfied waiters.
func (p *Pool) complete() {
	p.mu.Lock()
	p.activeWorkers--
	p.totalCompleted++

	remaining := p.waiters[:0]
	for _, w := range p.waiters {
		if p.totalCompleted >= w.target {
			close(w.ch)
			continue
		}
		remaining = append(remaining, w)
	}
	p.waiters = remaining

	if p.config.Metrics != nil {
		p.config.Metrics.WorkerPoolCompleted.WithLabelValues(p.config.Name).Inc()
	}
	p.updateMetricsLocked()
	p.mu.Unlock()
}

// run is the main loop for a worker.
func (w *worker) run() {
	defer w.pool.workerWg.Done()

	if w.pool.config.OnWorkerStart != nil {
		w.pool.config.OnWorkerStart(w.id)
	}
	if w.pool.config.OnWorkerStop != nil {
		defer w.pool.config.OnWorkerStop(w.id)
	}

	for {
		task, ok := w.pool.next()
		if !ok {
			return
		}
		w.executeTask(task)
	}
}

// executeTask executes a single task and reports its result.
func (w *worker) executeTask(task Task) {
	cfg := w.pool.config
	start := time.Now()
	var err error

	defer func() {
		if r := recover(); r != nil {
			if cfg.PanicHandler != nil {
				cfg.PanicHandler(task, r)
			} else {
				err = fmt.Errorf("task panicked: %v\nStack trace:\n%s", r, debug.Stack())
			}
		}

		if cfg.OnTaskComplete != nil {
			cfg.OnTaskComplete(w.id, Result{
				Task:     task,
				Error:    err,
				Duration: time.Since(start),
				WorkerID: w.id,
			})
		}
		w.pool.complete()
	}()

	if cfg.OnTaskStart != nil {
		cfg.OnTaskStart(w.id, task)
	}

	err = task.Execute(w.pool.ctx)
}
