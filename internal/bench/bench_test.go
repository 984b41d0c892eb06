package bench

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vnykmshr/matflow/internal/testutil"
	mferrors "github.com/vnykmshr/matflow/pkg/common/errors"
	"github.com/vnykmshr/matflow/pkg/matmul"
	"github.com/vnykmshr/matflow/pkg/metrics"
)

// every fires at a fixed sub-second interval, which cron.Every rounds away.
type every time.Duration

func (e every) Next(t time.Time) time.Time {
	return t.Add(time.Duration(e))
}

func testConfig(runs int) Config {
	return Config{
		Schedule:    "@every 1s",
		Runs:        runs,
		Dimensions:  Dimensions{LeftRows: 4, LeftCols: 3, RightRows: 3, RightCols: 5},
		ThreadCount: 2,
		Seed:        42,
	}
}

// collector records results passed to OnRun.
type collector struct {
	mu      sync.Mutex
	results []RunResult
}

func (c *collector) onRun(r RunResult) {
	c.mu.Lock()
	c.results = append(c.results, r)
	c.mu.Unlock()
}

func (c *collector) snapshot() []RunResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]RunResult(nil), c.results...)
}

func TestRunCompletesConfiguredRuns(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	var got collector
	config := testConfig(3)
	config.OnRun = got.onRun

	summary, err := run(ctx, config, every(5*time.Millisecond))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, summary.Runs, 3)
	testutil.AssertEqual(t, summary.Failures, 0)

	results := got.snapshot()
	testutil.AssertEqual(t, len(results), 3)
	for i, r := range results {
		testutil.AssertNoError(t, r.Err)
		testutil.AssertEqual(t, r.Run, i+1)
		testutil.AssertEqual(t, r.Result.Rows(), 4)
		testutil.AssertEqual(t, r.Result.Cols(), 5)
		testutil.AssertEqual(t, len(r.Report.Samples), 20)
	}
	testutil.AssertEqual(t, summary.MinWallClock <= summary.MaxWallClock, true)
	testutil.AssertEqual(t, summary.MeanWallClock() >= summary.MinWallClock, true)
}

func TestRunIsDeterministicPerSeed(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	var first, second collector
	a := testConfig(2)
	a.OnRun = first.onRun
	b := testConfig(2)
	b.OnRun = second.onRun

	_, err := run(ctx, a, every(2*time.Millisecond))
	testutil.AssertNoError(t, err)
	_, err = run(ctx, b, every(2*time.Millisecond))
	testutil.AssertNoError(t, err)

	x, y := first.snapshot(), second.snapshot()
	testutil.AssertEqual(t, len(x), len(y))
	for i := range x {
		testutil.AssertEqual(t, x[i].Result.Equal(y[i].Result), true)
	}
	// Consecutive runs draw new operands.
	testutil.AssertEqual(t, x[0].Result.Equal(x[1].Result), false)
}

func TestRunWithDescriptor(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	summary, err := Run(ctx, testConfig(1))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, summary.Runs, 1)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	summary, err := run(ctx, testConfig(5), every(time.Hour))
	testutil.AssertEqual(t, mferrors.IsCanceled(err), true)
	testutil.AssertErrorIs(t, err, context.DeadlineExceeded)
	testutil.AssertEqual(t, summary.Runs, 0)
}

func TestRunSharesMetrics(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	reg := metrics.NewRegistry(prometheus.NewRegistry())
	config := testConfig(3)
	config.Name = "shared"
	config.Metrics = reg

	_, err := run(ctx, config, every(time.Millisecond))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, promtestutil.ToFloat64(reg.Multiplications.WithLabelValues("shared", "done")), 3.0)
	testutil.AssertEqual(t, promtestutil.ToFloat64(reg.CellTasks.WithLabelValues("shared")), 60.0)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		target error
	}{
		{"valid", func(c *Config) {}, nil},
		{"five field cron", func(c *Config) { c.Schedule = "*/5 * * * *" }, nil},
		{"six field cron", func(c *Config) { c.Schedule = "*/2 * * * * *" }, nil},
		{"empty schedule", func(c *Config) { c.Schedule = "" }, mferrors.ErrInvalidConfiguration},
		{"bad schedule", func(c *Config) { c.Schedule = "every second" }, mferrors.ErrInvalidConfiguration},
		{"zero runs", func(c *Config) { c.Runs = 0 }, mferrors.ErrInvalidConfiguration},
		{"zero threads", func(c *Config) { c.ThreadCount = 0 }, mferrors.ErrInvalidConfiguration},
		{"negative rows", func(c *Config) { c.Dimensions.LeftRows = -1 }, mferrors.ErrInvalidConfiguration},
		{"dimension mismatch", func(c *Config) { c.Dimensions.RightRows = 4 }, mferrors.ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig(1)
			tt.modify(&config)

			err := config.Validate()
			if tt.target == nil {
				testutil.AssertNoError(t, err)
				return
			}
			testutil.AssertErrorIs(t, err, tt.target)
			testutil.AssertEqual(t, mferrors.IsValidationError(err), true)
		})
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	config := testConfig(1)
	config.Runs = 0

	summary, err := Run(context.Background(), config)
	testutil.AssertErrorIs(t, err, mferrors.ErrInvalidConfiguration)
	testutil.AssertEqual(t, summary == nil, true)
}

func TestDefaultConfig(t *testing.T) {
	testutil.AssertNoError(t, DefaultConfig().Validate())
}

func TestSummary(t *testing.T) {
	var s Summary
	s.add(RunResult{Run: 1, Report: &matmul.TimingReport{WallClock: 4 * time.Millisecond, SumOfTasks: 10 * time.Millisecond}})
	s.add(RunResult{Run: 2, Report: &matmul.TimingReport{WallClock: 2 * time.Millisecond, SumOfTasks: 6 * time.Millisecond}})
	s.add(RunResult{Run: 3, Err: mferrors.ErrCanceled})

	testutil.AssertEqual(t, s.Runs, 2)
	testutil.AssertEqual(t, s.Failures, 1)
	testutil.AssertEqual(t, s.MinWallClock, 2*time.Millisecond)
	testutil.AssertEqual(t, s.MaxWallClock, 4*time.Millisecond)
	testutil.AssertEqual(t, s.MeanWallClock(), 3*time.Millisecond)
	testutil.AssertEqual(t, s.MeanSumOfTasks(), 8*time.Millisecond)

	var sb strings.Builder
	_, err := s.WriteTo(&sb)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sb.String(),
		"runs: 2 (failed: 1)\nwall-clock min/mean/max: 2ms / 3ms / 4ms\nmean sum of task durations: 8ms\n")

	var empty Summary
	testutil.AssertEqual(t, empty.MeanWallClock(), time.Duration(0))
}
