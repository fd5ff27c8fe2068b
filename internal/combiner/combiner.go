// Package combiner materialises a combination index into a concrete
// instruction list by mixed-radix decomposition over the pattern library.
package combiner

import (
	"github.com/briansteffens/cold/internal/bytecode"
	cerrors "github.com/briansteffens/cold/internal/errors"
)

// Count returns the total number of combinations for a pattern library of
// size patternCount at the given depth: patternCount^depth (1 if depth is
// 0, matching original_source's count_combinations).
func Count(patternCount, depth int) int {
	if depth <= 0 {
		return 1
	}
	total := 1
	for i := 0; i < depth; i++ {
		total *= patternCount
	}
	return total
}

// Select decomposes combination index k in base len(patterns) across depth
// levels, vertical-major (the first depth slot varies fastest), returning
// the selected pattern index for each depth slot.
func Select(k, patternCount, depth int) []int {
	sel := make([]int, depth)
	rem := k
	for d := 0; d < depth; d++ {
		sel[d] = rem % patternCount
		rem /= patternCount
	}
	return sel
}

// Materialize builds the concrete instruction list for combination index k:
// for each depth slot (in order), clone the selected pattern's
// instructions (dropping Nxt placeholders), stamping PatternDepth, and
// concatenate.
func Materialize(patterns []bytecode.Pattern, depth, k int) ([]bytecode.Instruction, error) {
	if len(patterns) == 0 {
		if depth > 0 {
			return nil, cerrors.New(cerrors.ParseError, "depth > 0 requires at least one pattern")
		}
		return nil, nil
	}

	total := Count(len(patterns), depth)
	if k < 0 || k >= total {
		return nil, cerrors.Newf(cerrors.ParseError, "combination index %d out of range [0, %d)", k, total)
	}

	sel := Select(k, len(patterns), depth)

	var out []bytecode.Instruction
	for depthSlot, patternIdx := range sel {
		out = append(out, patterns[patternIdx].CloneInstructions(depthSlot)...)
	}
	return out, nil
}
