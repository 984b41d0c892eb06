package matmul

import (
	"runtime"
	"time"

	"github.com/vnykmshr/matflow/pkg/metrics"
)

// Config holds configuration options for a Multiplier.
type Config struct {
	// ThreadCount is the number of pool workers computing cells.
	// Must be greater than 0.
	ThreadCount int

	// Name labels metrics and the worker pool. Defaults to "matmul".
	Name string

	// Metrics receives run, cell and pool metrics when non-nil.
	// Build it once with metrics.Config.Build and share it between runs.
	Metrics *metrics.Registry

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultConfig returns a configuration with one worker per CPU.
func DefaultConfig() Config {
	return Config{
		ThreadCount: runtime.NumCPU(),
		Name:        "matmul",
		Clock:       time.Now,
	}
}
