// Package coldcontext defines Context, the read-only description of one
// synthesis problem shared (immutably) by every worker in the pool.
package coldcontext

import (
	"github.com/briansteffens/cold/internal/bytecode"
	"github.com/briansteffens/cold/internal/value"
)

// Case is one (inputs, expected-output) test pair.
type Case struct {
	Args     []value.Value
	Expected value.Value
}

// Context aggregates everything a solve run needs that does not change
// once the .solve file has been parsed: input names, cases, the pattern
// library, constants, precision, search depth and output flags. It is
// shared read-only across every worker; solver.Solve sets the output flags
// after parse.SolveFile returns, and nothing in Context is mutated once
// the worker pool starts.
type Context struct {
	InputNames []string
	Cases      []Case
	Patterns   []bytecode.Pattern
	Constants  []value.Value
	Precision  value.Value
	Depth      int

	PrintSolutions bool
	FindAll        bool
	LogGenerated   bool
}

// ConstantOperands renders Constants as Literal operands for the permuter.
// It builds a fresh slice on every call; nothing is cached.
func (c *Context) ConstantOperands() []bytecode.Operand {
	out := make([]bytecode.Operand, len(c.Constants))
	for i, v := range c.Constants {
		out[i] = bytecode.Literal(v)
	}
	return out
}

// CombinationCount is the total number of combinations this context
// defines (patterns^depth).
func (c *Context) CombinationCount() int {
	if c.Depth <= 0 {
		return 1
	}
	total := 1
	for i := 0; i < c.Depth; i++ {
		total *= len(c.Patterns)
	}
	return total
}
