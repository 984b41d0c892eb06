package bench

import (
	"fmt"
	"io"
	"time"
)

// Summary aggregates the timing of a benchmark session.
type Summary struct {
	// Runs counts successful multiplications.
	Runs int
	// Failures counts runs that returned an error.
	Failures int

	MinWallClock    time.Duration
	MaxWallClock    time.Duration
	TotalWallClock  time.Duration
	TotalSumOfTasks time.Duration
}

func (s *Summary) add(r RunResult) {
	if r.Err != nil || r.Report == nil {
		s.Failures++
		return
	}

	wall := r.Report.WallClock
	if s.Runs == 0 || wall < s.MinWallClock {
		s.MinWallClock = wall
	}
	if wall > s.MaxWallClock {
		s.MaxWallClock = wall
	}
	s.Runs++
	s.TotalWallClock += wall
	s.TotalSumOfTasks += r.Report.SumOfTasks
}

// MeanWallClock returns the average wall-clock time of successful runs.
func (s *Summary) MeanWallClock() time.Duration {
	if s.Runs == 0 {
		return 0
	}
	return s.TotalWallClock / time.Duration(s.Runs)
}

// MeanSumOfTasks returns the average aggregate task time of successful runs.
func (s *Summary) MeanSumOfTasks() time.Duration {
	if s.Runs == 0 {
		return 0
	}
	return s.TotalSumOfTasks / time.Duration(s.Runs)
}

// WriteTo prints the summary.
func (s *Summary) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w,
		"runs: %d (failed: %d)\nwall-clock min/mean/max: %v / %v / %v\nmean sum of task durations: %v\n",
		s.Runs, s.Failures,
		s.MinWallClock, s.MeanWallClock(), s.MaxWallClock,
		s.MeanSumOfTasks())
	return int64(n), err
}
