package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	mferrors "github.com/vnykmshr/matflow/pkg/common/errors"
	"github.com/vnykmshr/matflow/pkg/matmul"
	"github.com/vnykmshr/matflow/pkg/matrix"
)

// options holds the flags shared by every subcommand.
type options struct {
	quiet   bool
	timings bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "matflow",
		Short:         "Parallel integer matrix multiplication",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the result matrix")
	cmd.PersistentFlags().BoolVarP(&opts.timings, "timings", "t", false, "print the per-task timing report")

	cmd.AddCommand(newMultiplyCmd(opts))
	cmd.AddCommand(newRandomCmd(opts))
	cmd.AddCommand(newBenchCmd(opts))
	return cmd
}

// run multiplies left by right and prints the outcome to cmd's output.
func (o *options) run(cmd *cobra.Command, left, right *matrix.Matrix, threads int) error {
	m, err := matmul.New(left, right, threads)
	if err != nil {
		return err
	}

	result, report, err := m.Multiply(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !o.quiet {
		if _, err := io.WriteString(out, result.String()); err != nil {
			return err
		}
	}
	if o.timings {
		_, err = report.WriteTo(out)
		return err
	}
	_, err = fmt.Fprintf(out, "total time: %v\n", report.WallClock)
	return err
}

// parseInts converts positional arguments, naming the offending one on failure.
func parseInts(names []string, args []string) ([]int, error) {
	values := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, mferrors.NewValidationError("matflow", names[i], arg, "not an integer").
				WithHint("pass a whole number")
		}
		values[i] = v
	}
	return values, nil
}
