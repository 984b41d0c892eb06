package bench

import (
	"runtime"

	"github.com/robfig/cron/v3"

	mferrors "github.com/vnykmshr/matflow/pkg/common/errors"
	"github.com/vnykmshr/matflow/pkg/common/validation"
	"github.com/vnykmshr/matflow/pkg/metrics"
)

// DefaultSchedule runs one multiplication per second.
const DefaultSchedule = "@every 1s"

// Dimensions are the shapes of the two random operands.
type Dimensions struct {
	LeftRows  int
	LeftCols  int
	RightRows int
	RightCols int
}

// Config controls a benchmark session.
type Config struct {
	// Schedule is a cron expression (seconds field optional) or a
	// descriptor such as "@every 2s".
	Schedule string

	// Runs is the number of multiplications to perform before stopping.
	Runs int

	// Dimensions of the random operands generated for each run.
	Dimensions Dimensions

	// ThreadCount is the worker count for every run.
	ThreadCount int

	// Seed feeds the random generator. Equal seeds produce equal operands.
	Seed uint64

	// Name labels the metrics of every run. Defaults to "bench".
	Name string

	// Metrics is shared by every run. Nil disables metrics.
	Metrics *metrics.Registry

	// Logger receives the scheduler's diagnostics. Nil discards them.
	Logger cron.Logger

	// OnRun is called after each run finishes, successfully or not.
	OnRun func(RunResult)
}

// DefaultConfig returns a configuration for a single 100×100 run per second.
func DefaultConfig() Config {
	return Config{
		Schedule:    DefaultSchedule,
		Runs:        10,
		Dimensions:  Dimensions{LeftRows: 100, LeftCols: 100, RightRows: 100, RightCols: 100},
		ThreadCount: runtime.NumCPU(),
		Seed:        1,
		Name:        "bench",
	}
}

// parser accepts both five and six field expressions as well as descriptors.
var parser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Validate reports the first invalid field as a ValidationError.
func (c Config) Validate() error {
	_, err := c.schedule()
	return err
}

func (c Config) schedule() (cron.Schedule, error) {
	if err := validation.ValidateNotEmpty("bench", "schedule", c.Schedule); err != nil {
		return nil, err
	}
	schedule, err := parser.Parse(c.Schedule)
	if err != nil {
		return nil, mferrors.NewValidationError("bench", "schedule", c.Schedule, "unparseable cron expression").
			WithHint(`use a cron expression or a descriptor like "@every 1s"`).
			WithCause(err)
	}

	checks := []struct {
		field string
		value int
	}{
		{"runs", c.Runs},
		{"threadCount", c.ThreadCount},
		{"dimensions.leftRows", c.Dimensions.LeftRows},
		{"dimensions.leftCols", c.Dimensions.LeftCols},
		{"dimensions.rightRows", c.Dimensions.RightRows},
		{"dimensions.rightCols", c.Dimensions.RightCols},
	}
	for _, check := range checks {
		if err := validation.ValidatePositive("bench", check.field, check.value); err != nil {
			return nil, err
		}
	}
	if err := validation.ValidateDimensions("bench", c.Dimensions.LeftCols, c.Dimensions.RightRows); err != nil {
		return nil, err
	}
	return schedule, nil
}
