package workerpool

import (
	"context"
	"sync"
	"time"

	"github.com/vnykmshr/matflow/pkg/common/validation"
	"github.com/vnykmshr/matflow/pkg/metrics"
)

// Task represents a unit of work that can be executed by a worker.
type Task interface {
	// Execute runs the task with the given context.
	// The context is canceled when the pool is stopped with ShutdownNow.
	Execute(ctx context.Context) error
}

// TaskFunc is a function type that implements the Task interface.
type TaskFunc func(ctx context.Context) error

// Execute implements the Task interface for TaskFunc.
func (f TaskFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// Result represents the result of a task execution.
type Result struct {
	// Task is the original task that was executed
	Task Task

	// Error is any error that occurred during task execution
	Error error

	// Duration is how long the task took to execute
	Duration time.Duration

	// WorkerID identifies which worker executed the task
	WorkerID int
}

// Config holds configuration options for creating a worker pool.
type Config struct {
	// WorkerCount is the number of workers in the pool.
	// Must be greater than 0.
	WorkerCount int

	// Name labels the pool's metrics. Defaults to "workerpool".
	Name string

	// Metrics receives pool gauges when non-nil.
	Metrics *metrics.Registry

	// PanicHandler is called when a task panics.
	// If nil, the panic is converted into the task's Result error.
	PanicHandler func(task Task, recovered interface{})

	// OnWorkerStart is called when a worker starts.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker stops.
	OnWorkerStop func(workerID int)

	// OnTaskStart is called before a task begins execution.
	OnTaskStart func(workerID int, task Task)

	// OnTaskComplete is called after a task completes (success or failure),
	// before the completion is counted, so AwaitCount observes its effects.
	OnTaskComplete func(workerID int, result Result)
}

// Pool runs submitted tasks on a fixed set of worker goroutines.
// Tasks wait in an unbounded FIFO queue, so Submit never blocks.
type Pool struct {
	config Config

	ctx    context.Context
	cancel context.CancelFunc

	mu             sync.Mutex
	cond           *sync.Cond
	queue          []Task
	closed         bool
	stopped        bool
	activeWorkers  int
	totalSubmitted int64
	totalCompleted int64
	totalDiscarded int64
	waiters        []*waiter

	workerWg sync.WaitGroup
	stopOnce sync.Once
	done     chan struct{}
}

// worker represents a single worker in the pool.
type worker struct {
	id   int
	pool *Pool
}

// New creates a new worker pool with the specified number of workers.
func New(workerCount int) (*Pool, error) {
	return NewWithConfig(Config{WorkerCount: workerCount})
}

// NewWithConfig creates a new worker pool with the specified configuration.
// A WorkerCount below 1 yields a ValidationError.
func NewWithConfig(config Config) (*Pool, error) {
	if err := validation.ValidatePositive("workerpool", "workerCount", config.WorkerCount); err != nil {
		return nil, err
	}
	if config.Name == "" {
		config.Name = "workerpool"
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool := &Pool{
		config: config,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	pool.cond = sync.NewCond(&pool.mu)

	pool.workerWg.Add(config.WorkerCount)
	for i := 0; i < config.WorkerCount; i++ {
		w := &worker{id: i, pool: pool}
		go w.run()
	}

	pool.mu.Lock()
	pool.updateMetricsLocked()
	pool.mu.Unlock()
	return pool, nil
}
