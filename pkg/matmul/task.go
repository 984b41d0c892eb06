package matmul

import (
	"context"
	"sync"
	"time"

	"github.com/vnykmshr/matflow/pkg/matrix"
)

// CellTask computes one cell of the product and records how long it took.
type CellTask struct {
	row, col    int
	left, right *matrix.Matrix
	cell        *int
	timings     *timings
	now         func() time.Time
}

// Row returns the output row computed by the task.
func (t *CellTask) Row() int { return t.row }

// Col returns the output column computed by the task.
func (t *CellTask) Col() int { return t.col }

// Execute writes the dot product of the task's left row and right column
// into its cell and appends one timing sample. Overflow wraps.
func (t *CellTask) Execute(ctx context.Context) error {
	start := t.now()

	sum := 0
	for k := 0; k < t.left.Cols(); k++ {
		sum += t.left.At(t.row, k) * t.right.At(k, t.col)
	}
	*t.cell = sum

	t.timings.add(TimingSample{
		Row:      t.row,
		Col:      t.col,
		Start:    start,
		Duration: t.now().Sub(start),
	})
	return nil
}

// timings is the append-only sample collection shared by all cell tasks.
type timings struct {
	mu      sync.Mutex
	samples []TimingSample
}

func newTimings(capacity int) *timings {
	return &timings{samples: make([]TimingSample, 0, capacity)}
}

func (t *timings) add(s TimingSample) {
	t.mu.Lock()
	t.samples = append(t.samples, s)
	t.mu.Unlock()
}

func (t *timings) snapshot() []TimingSample {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]TimingSample, len(t.samples))
	copy(out, t.samples)
	return out
}
