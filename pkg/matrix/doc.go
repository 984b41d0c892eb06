/*
Package matrix provides the immutable integer matrix shared by every matflow
component, together with the collaborators that produce and consume it.

A Matrix is a rectangular rows×cols grid of int values with rows ≥ 1 and
cols ≥ 1. New copies its input, so a Matrix never changes after construction:

	m, err := matrix.New([][]int{
		{1, 2, 3},
		{4, 5, 6},
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(m.Rows(), m.Cols(), m.At(1, 2)) // 2 3 6

File Format:

Matrices are read from text where each line is one row and values are
separated by commas. Whitespace around values is ignored and blank lines
are skipped:

	1, 2, 3
	4, 5, 6

Parse and ReadFile reject empty input, values that are not integers and rows
whose length differs from the first row. Write emits the same format.

Random Matrices:

Random fills a matrix with values in [0, 100) drawn from a caller-supplied
*rand.Rand, so runs can be reproduced from a seed:

	rng := rand.New(rand.NewPCG(42, 42))
	m, err := matrix.Random(rng, 50, 50)

Compatibility:

CheckCompatible verifies that left.Cols() == right.Rows() before a product
is attempted. The returned error wraps errors.ErrDimensionMismatch.
*/
package matrix
