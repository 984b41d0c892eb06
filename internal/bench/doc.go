// Package bench runs repeated matrix multiplications on a cron schedule and
// summarizes their timing.
//
// Each activation generates two random operands from a seeded generator and
// multiplies them with a fresh matmul.Multiplier. Activations that fire while
// a run is still in progress are skipped, so runs never overlap.
package bench
