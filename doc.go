/*
Package matflow multiplies integer matrices on a fixed pool of worker goroutines.

Matrices (pkg/matrix):
  - construction, comma-separated file parsing and random generation

Multiplication (pkg/matmul):
  - one task per output cell, a completion wait and a timing report

Observability (pkg/metrics):
  - Prometheus counters, histograms and pool gauges

Example usage:

	import (
		"github.com/vnykmshr/matflow/pkg/matmul"
		"github.com/vnykmshr/matflow/pkg/matrix"
	)

	left := matrix.MustNew([][]int{{1, 2, 3}, {4, 5, 6}})
	right := matrix.MustNew([][]int{{7, 8}, {9, 10}, {11, 12}})

	m, err := matmul.New(left, right, 4)
	if err != nil {
		return err
	}
	result, report, err := m.Multiply(ctx)

The matflow command (cmd/matflow) wraps these packages for files, random
operands and scheduled benchmark sessions.
*/
package matflow
