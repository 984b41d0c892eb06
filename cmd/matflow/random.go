package main

import (
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/vnykmshr/matflow/pkg/common/validation"
	"github.com/vnykmshr/matflow/pkg/matrix"
)

var shapeArgs = []string{"r1", "c1", "r2", "c2", "threads"}

func newRandomCmd(opts *options) *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "random <r1> <c1> <r2> <c2> <threads>",
		Short: "Multiply two random matrices of the given shapes",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseInts(shapeArgs, args)
			if err != nil {
				return err
			}
			if err := validation.ValidateDimensions("matflow", v[1], v[2]); err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}

			rng := rand.New(rand.NewPCG(seed, seed))
			left, err := matrix.Random(rng, v[0], v[1])
			if err != nil {
				return err
			}
			right, err := matrix.Random(rng, v[2], v[3])
			if err != nil {
				return err
			}

			return opts.run(cmd, left, right, v[4])
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (defaults to the current time)")
	return cmd
}
