package matmul

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vnykmshr/matflow/internal/workerpool"
	mferrors "github.com/vnykmshr/matflow/pkg/common/errors"
	"github.com/vnykmshr/matflow/pkg/common/validation"
	"github.com/vnykmshr/matflow/pkg/matrix"
)

// State is the lifecycle stage of a Multiplier.
type State int

const (
	// StateCreated means Multiply has not been called.
	StateCreated State = iota
	// StateRunning means the pool is up and cells are being submitted.
	StateRunning
	// StateAwaiting means every cell is submitted and the run waits for completion.
	StateAwaiting
	// StateDone means the result is ready.
	StateDone
	// StateCancelled means the wait was abandoned because the context ended.
	StateCancelled
	// StateFailed means the pool could not run or a cell task failed.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateAwaiting:
		return "awaiting"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Multiplier computes left × right with one pool task per output cell.
// A Multiplier performs a single run.
type Multiplier struct {
	left   *matrix.Matrix
	right  *matrix.Matrix
	config Config

	rows, cols int
	result     []int
	timings    *timings

	mu      sync.Mutex
	state   State
	taskErr error
}

// New creates a Multiplier that uses threadCount workers.
func New(left, right *matrix.Matrix, threadCount int) (*Multiplier, error) {
	config := DefaultConfig()
	config.ThreadCount = threadCount
	return NewWithConfig(left, right, config)
}

// NewWithConfig creates a Multiplier with the given configuration.
//
// It returns a ValidationError when a matrix is nil or ThreadCount is below 1,
// and a ValidationError wrapping errors.ErrDimensionMismatch when
// left.Cols() != right.Rows().
func NewWithConfig(left, right *matrix.Matrix, config Config) (*Multiplier, error) {
	if left == nil {
		return nil, validation.ValidateNotNil("matmul", "left", nil)
	}
	if right == nil {
		return nil, validation.ValidateNotNil("matmul", "right", nil)
	}
	if err := validation.ValidatePositive("matmul", "threadCount", config.ThreadCount); err != nil {
		return nil, err
	}
	if err := validation.ValidateDimensions("matmul", left.Cols(), right.Rows()); err != nil {
		return nil, err
	}
	if config.Name == "" {
		config.Name = "matmul"
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}

	rows, cols := left.Rows(), right.Cols()
	return &Multiplier{
		left:    left,
		right:   right,
		config:  config,
		rows:    rows,
		cols:    cols,
		result:  make([]int, rows*cols),
		timings: newTimings(rows * cols),
		state:   StateCreated,
	}, nil
}

// State returns the current lifecycle stage.
func (m *Multiplier) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Multiply runs the multiplication and blocks until every cell is computed.
//
// If ctx ends while waiting, the pool is stopped, its workers have exited by
// the time Multiply returns, and the error wraps errors.ErrCanceled. No
// partial result is returned. Calling Multiply a second time returns an error
// wrapping errors.ErrAlreadyRun.
func (m *Multiplier) Multiply(ctx context.Context) (*matrix.Matrix, *TimingReport, error) {
	if !m.transition(StateCreated, StateRunning) {
		return nil, nil, mferrors.NewOperationError("matmul", "Multiply", mferrors.ErrAlreadyRun).
			WithContext("create a new Multiplier for each run")
	}

	start := m.config.Clock()

	pool, err := workerpool.NewWithConfig(workerpool.Config{
		WorkerCount:    m.config.ThreadCount,
		Name:           m.config.Name,
		Metrics:        m.config.Metrics,
		OnTaskComplete: m.onTaskComplete,
	})
	if err != nil {
		return nil, nil, m.fail(StateFailed, err)
	}

	shutdown := pool.ShutdownNow
	defer func() { <-shutdown() }()

	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			task := &CellTask{
				row:     r,
				col:     c,
				left:    m.left,
				right:   m.right,
				cell:    &m.result[r*m.cols+c],
				timings: m.timings,
				now:     m.config.Clock,
			}
			if err := pool.Submit(task); err != nil {
				return nil, nil, m.fail(StateFailed, err)
			}
		}
	}

	m.setState(StateAwaiting)
	err = pool.AwaitCount(ctx, int64(m.rows*m.cols))
	end := m.config.Clock()
	if err != nil {
		if mferrors.IsCanceled(err) {
			return nil, nil, m.fail(StateCancelled, err)
		}
		return nil, nil, m.fail(StateFailed, err)
	}
	if taskErr := m.firstTaskError(); taskErr != nil {
		return nil, nil, m.fail(StateFailed, taskErr)
	}
	shutdown = pool.Shutdown

	report := newTimingReport(m.timings.snapshot(), end.Sub(start))
	result, err := matrix.FromRowMajor(m.rows, m.cols, m.result)
	if err != nil {
		return nil, nil, m.fail(StateFailed, err)
	}

	m.setState(StateDone)
	m.recordMetrics("done", report)
	return result, report, nil
}

// onTaskComplete keeps the first task failure.
func (m *Multiplier) onTaskComplete(workerID int, result workerpool.Result) {
	if result.Error == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.taskErr != nil {
		return
	}
	if task, ok := result.Task.(*CellTask); ok {
		m.taskErr = fmt.Errorf("cell (%d,%d) on worker %d: %w", task.row, task.col, workerID, result.Error)
		return
	}
	m.taskErr = result.Error
}

func (m *Multiplier) firstTaskError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.taskErr
}

func (m *Multiplier) transition(from, to State) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != from {
		return false
	}
	m.state = to
	return true
}

func (m *Multiplier) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Multiplier) fail(s State, cause error) error {
	m.setState(s)
	outcome := "failed"
	if s == StateCancelled {
		outcome = "canceled"
	}
	m.recordMetrics(outcome, nil)

	return mferrors.NewOperationError("matmul", "Multiply", cause).
		WithContext(fmt.Sprintf("%dx%d result, %d workers", m.rows, m.cols, m.config.ThreadCount))
}

func (m *Multiplier) recordMetrics(outcome string, report *TimingReport) {
	reg := m.config.Metrics
	if reg == nil {
		return
	}

	name := m.config.Name
	reg.Multiplications.WithLabelValues(name, outcome).Inc()
	if report == nil {
		return
	}

	reg.CellTasks.WithLabelValues(name).Add(float64(len(report.Samples)))
	cellDuration := reg.CellTaskDuration.WithLabelValues(name)
	for _, s := range report.Samples {
		cellDuration.Observe(s.Duration.Seconds())
	}
	reg.WallClockDuration.WithLabelValues(name).Observe(report.WallClock.Seconds())
	reg.SumOfTasksDuration.WithLabelValues(name).Observe(report.SumOfTasks.Seconds())
}

var _ workerpool.Task = (*CellTask)(nil)
