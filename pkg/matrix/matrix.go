package matrix

import (
	"fmt"
	"strconv"
	"strings"

	mferrors "github.com/vnykmshr/matflow/pkg/common/errors"
	"github.com/vnykmshr/matflow/pkg/common/validation"
)

// Matrix is an immutable rectangular grid of integers stored in row-major order.
type Matrix struct {
	rows int
	cols int
	data []int
}

// New builds a Matrix from row slices. The input is copied.
// It returns a ValidationError when there are no rows, no columns,
// or rows of differing length.
func New(rows [][]int) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, mferrors.NewValidationError("matrix", "rows", 0, "must be positive").
			WithHint("provide at least one row")
	}

	cols := len(rows[0])
	if cols == 0 {
		return nil, mferrors.NewValidationError("matrix", "cols", 0, "must be positive").
			WithHint("provide at least one value per row")
	}

	data := make([]int, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, mferrors.NewValidationError("matrix", fmt.Sprintf("row[%d]", i), len(row),
				fmt.Sprintf("length must be %d", cols)).
				WithHint("all rows must have the same length")
		}
		data = append(data, row...)
	}

	return &Matrix{rows: len(rows), cols: cols, data: data}, nil
}

// MustNew is like New but panics on invalid input. Intended for literals.
func MustNew(rows [][]int) *Matrix {
	m, err := New(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// FromRowMajor builds a rows×cols Matrix from a flat row-major slice.
// The slice is copied.
func FromRowMajor(rows, cols int, data []int) (*Matrix, error) {
	if err := validation.ValidatePositive("matrix", "rows", rows); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositive("matrix", "cols", cols); err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, mferrors.NewValidationError("matrix", "data", len(data),
			fmt.Sprintf("length must be %d", rows*cols))
	}

	cp := make([]int, len(data))
	copy(cp, data)
	return &Matrix{rows: rows, cols: cols, data: cp}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the value at row r, column c. It panics when out of range.
func (m *Matrix) At(r, c int) int {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		panic(fmt.Sprintf("matrix: index (%d, %d) out of range for %dx%d", r, c, m.rows, m.cols))
	}
	return m.data[r*m.cols+c]
}

// Row returns a copy of row r.
func (m *Matrix) Row(r int) []int {
	if r < 0 || r >= m.rows {
		panic(fmt.Sprintf("matrix: row %d out of range for %d rows", r, m.rows))
	}
	row := make([]int, m.cols)
	copy(row, m.data[r*m.cols:(r+1)*m.cols])
	return row
}

// ToSlices returns a deep copy of the matrix as row slices.
func (m *Matrix) ToSlices() [][]int {
	out := make([][]int, m.rows)
	for r := range out {
		out[r] = m.Row(r)
	}
	return out
}

// Equal reports whether both matrices have the same shape and values.
func (m *Matrix) Equal(other *Matrix) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, v := range m.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// String renders one row per line with values separated by spaces.
func (m *Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(m.data[r*m.cols+c]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// CheckCompatible reports whether left × right is defined.
func CheckCompatible(left, right *Matrix) error {
	if left == nil {
		return validation.ValidateNotNil("matrix", "left", nil)
	}
	if right == nil {
		return validation.ValidateNotNil("matrix", "right", nil)
	}
	return validation.ValidateDimensions("matrix", left.cols, right.rows)
}
