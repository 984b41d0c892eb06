package bench

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	mferrors "github.com/vnykmshr/matflow/pkg/common/errors"
)

// FileConfig is the YAML form of a benchmark session:
//
//	schedule: "@every 2s"
//	runs: 5
//	threads: 8
//	seed: 42
//	left:  {rows: 200, cols: 300}
//	right: {rows: 300, cols: 100}
type FileConfig struct {
	Name        string  `yaml:"name"`
	Schedule    string  `yaml:"schedule"`
	Runs        int     `yaml:"runs"`
	ThreadCount int     `yaml:"threads"`
	Seed        *uint64 `yaml:"seed"`
	Left        Shape   `yaml:"left"`
	Right       Shape   `yaml:"right"`
}

// Shape is the size of one operand.
type Shape struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// LoadFile reads a FileConfig from path.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mferrors.NewOperationError("bench", "LoadFile", err)
	}

	fc, err := parseFile(data)
	if err != nil {
		return nil, mferrors.NewOperationError("bench", "LoadFile", err).WithContext(path)
	}
	return fc, nil
}

// parseFile decodes YAML and rejects unknown keys.
func parseFile(data []byte) (*FileConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var fc FileConfig
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &fc, nil
}

// Apply overwrites the fields of c that are set in the file.
func (f *FileConfig) Apply(c *Config) {
	if f.Name != "" {
		c.Name = f.Name
	}
	if f.Schedule != "" {
		c.Schedule = f.Schedule
	}
	if f.Runs != 0 {
		c.Runs = f.Runs
	}
	if f.ThreadCount != 0 {
		c.ThreadCount = f.ThreadCount
	}
	if f.Seed != nil {
		c.Seed = *f.Seed
	}
	if f.Left.Rows != 0 {
		c.Dimensions.LeftRows = f.Left.Rows
	}
	if f.Left.Cols != 0 {
		c.Dimensions.LeftCols = f.Left.Cols
	}
	if f.Right.Rows != 0 {
		c.Dimensions.RightRows = f.Right.Rows
	}
	if f.Right.Cols != 0 {
		c.Dimensions.RightCols = f.Right.Cols
	}
}
