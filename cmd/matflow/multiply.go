package main

import (
	"github.com/spf13/cobra"

	"github.com/vnykmshr/matflow/pkg/matrix"
)

func newMultiplyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "multiply <left-file> <right-file> <threads>",
		Short: "Multiply two matrices read from files",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseInts([]string{"threads"}, args[2:])
			if err != nil {
				return err
			}

			left, err := matrix.ReadFile(args[0])
			if err != nil {
				return err
			}
			right, err := matrix.ReadFile(args[1])
			if err != nil {
				return err
			}

			return opts.run(cmd, left, right, values[0])
		},
	}
}
