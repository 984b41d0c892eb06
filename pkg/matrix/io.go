package matrix

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	mferrors "github.com/vnykmshr/matflow/pkg/common/errors"
)

// Parse reads a comma-separated matrix, one row per line.
func Parse(r io.Reader) (*Matrix, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	var rows [][]int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, mferrors.NewOperationError("matrix", "Parse", perr.Err).
					WithContext(fmt.Sprintf("line %d", perr.Line))
			}
			return nil, mferrors.NewOperationError("matrix", "Parse", err)
		}

		line, _ := reader.FieldPos(0)
		row := make([]int, len(record))
		for i, field := range record {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, mferrors.NewOperationError("matrix", "Parse", err).
					WithContext(fmt.Sprintf("line %d, column %d", line, i+1))
			}
			row[i] = v
		}
		rows = append(rows, row)
	}

	return New(rows)
}

// ReadFile parses the matrix stored at path.
func ReadFile(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, mferrors.NewOperationError("matrix", "ReadFile", err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Write emits m in the format accepted by Parse.
func Write(w io.Writer, m *Matrix) error {
	bw := bufio.NewWriter(w)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if c > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(strconv.Itoa(m.data[r*m.cols+c]))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return mferrors.NewOperationError("matrix", "Write", err)
	}
	return nil
}
