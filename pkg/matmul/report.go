package matmul

import (
	"fmt"
	"io"
	"time"
)

// TimingSample is the measured execution window of one cell task.
type TimingSample struct {
	Row      int
	Col      int
	Start    time.Time
	Duration time.Duration
}

// TimingReport aggregates the timing of one multiplication run.
type TimingReport struct {
	// Samples holds one entry per output cell in the order tasks finished.
	Samples []TimingSample

	// WallClock is the elapsed real time from the start of the run until
	// every cell had completed.
	WallClock time.Duration

	// SumOfTasks adds up every sample. Cells run concurrently, so this is
	// aggregate work time and exceeds WallClock whenever tasks overlap.
	SumOfTasks time.Duration

	// ReportedTotal is WallClock + SumOfTasks. It double counts overlapping
	// work and is not an elapsed time.
	ReportedTotal time.Duration
}

func newTimingReport(samples []TimingSample, wallClock time.Duration) *TimingReport {
	var sum time.Duration
	for _, s := range samples {
		sum += s.Duration
	}
	return &TimingReport{
		Samples:       samples,
		WallClock:     wallClock,
		SumOfTasks:    sum,
		ReportedTotal: wallClock + sum,
	}
}

// Durations returns the sample durations in append order.
func (r *TimingReport) Durations() []time.Duration {
	out := make([]time.Duration, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Duration
	}
	return out
}

// WriteTo prints the report: the wall-clock total, one line per task in
// append order, then the sum of task durations and the reported total.
func (r *TimingReport) WriteTo(w io.Writer) (int64, error) {
	var written int64
	printf := func(format string, args ...interface{}) error {
		n, err := fmt.Fprintf(w, format, args...)
		written += int64(n)
		return err
	}

	if err := printf("wall-clock total: %v\n", r.WallClock); err != nil {
		return written, err
	}
	for i, s := range r.Samples {
		if err := printf("task %d (%d,%d) duration: %v\n", i+1, s.Row, s.Col, s.Duration); err != nil {
			return written, err
		}
	}
	if err := printf("sum of task durations: %v\n", r.SumOfTasks); err != nil {
		return written, err
	}
	if err := printf("reported total (wall-clock + sum of task durations): %v\n", r.ReportedTotal); err != nil {
		return written, err
	}
	return written, nil
}
