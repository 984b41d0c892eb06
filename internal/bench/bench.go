package bench

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	mferrors "github.com/vnykmshr/matflow/pkg/common/errors"
	"github.com/vnykmshr/matflow/pkg/matmul"
	"github.com/vnykmshr/matflow/pkg/matrix"
)

// RunResult is the outcome of one scheduled multiplication.
type RunResult struct {
	// Run is the 1-based sequence number of the run.
	Run     int
	Started time.Time
	Result  *matrix.Matrix
	Report  *matmul.TimingReport
	Err     error
}

// Run performs config.Runs multiplications of fresh random operands, one per
// activation of config.Schedule, and blocks until all of them have finished.
//
// A failed run is counted in the summary and does not stop the session. If
// ctx ends first, Run returns the partial summary with an error wrapping
// errors.ErrCanceled.
func Run(ctx context.Context, config Config) (*Summary, error) {
	schedule, err := config.schedule()
	if err != nil {
		return nil, err
	}
	return run(ctx, config, schedule)
}

func run(ctx context.Context, config Config, schedule cron.Schedule) (*Summary, error) {
	if config.Name == "" {
		config.Name = "bench"
	}
	logger := config.Logger
	if logger == nil {
		logger = cron.DiscardLogger
	}

	rng := rand.New(rand.NewPCG(config.Seed, config.Seed))
	// Buffered for every run so jobs never block once Run has returned.
	results := make(chan RunResult, config.Runs)
	var started int64

	job := cron.FuncJob(func() {
		n := int(atomic.AddInt64(&started, 1))
		if n > config.Runs {
			return
		}
		results <- runOnce(ctx, config, rng, n)
	})

	// SkipIfStillRunning serializes jobs, which keeps rng single-threaded.
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.SkipIfStillRunning(logger)),
	)
	c.Schedule(schedule, job)
	c.Start()
	defer func() { <-c.Stop().Done() }()

	summary := &Summary{}
	for i := 0; i < config.Runs; i++ {
		select {
		case r := <-results:
			summary.add(r)
			if config.OnRun != nil {
				config.OnRun(r)
			}
		case <-ctx.Done():
			cause := fmt.Errorf("%w: %w", mferrors.ErrCanceled, ctx.Err())
			return summary, mferrors.NewOperationError("bench", "Run", cause).
				WithContext(fmt.Sprintf("%d of %d runs finished", i, config.Runs))
		}
	}
	return summary, nil
}

func runOnce(ctx context.Context, config Config, rng *rand.Rand, n int) RunResult {
	result := RunResult{Run: n, Started: time.Now()}
	d := config.Dimensions

	left, err := matrix.Random(rng, d.LeftRows, d.LeftCols)
	if err != nil {
		result.Err = err
		return result
	}
	right, err := matrix.Random(rng, d.RightRows, d.RightCols)
	if err != nil {
		result.Err = err
		return result
	}

	m, err := matmul.NewWithConfig(left, right, matmul.Config{
		ThreadCount: config.ThreadCount,
		Name:        config.Name,
		Metrics:     config.Metrics,
	})
	if err != nil {
		result.Err = err
		return result
	}

	result.Result, result.Report, result.Err = m.Multiply(ctx)
	return result
}
