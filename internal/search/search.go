// Package search implements the depth-first exploration of one
// combination: stepping/forking through wildcard permutations, watching
// locals for a case[0] match, and validating full candidates against every
// remaining case.
package search

import (
	"github.com/briansteffens/cold/internal/bytecode"
	"github.com/briansteffens/cold/internal/coldcontext"
	"github.com/briansteffens/cold/internal/interp"
	"github.com/briansteffens/cold/internal/permute"
	"github.com/briansteffens/cold/internal/value"
)

// Solution is a validated candidate: the instruction list, ending in the
// synthesized ret that names the matching local.
type Solution struct {
	Instructions []bytecode.Instruction
}

// Driver runs the DFS search for one combination's instruction list.
type Driver struct {
	Ctx *coldcontext.Context

	// ProgramsCompleted counts every State that ran to completion,
	// matching original_source's programs_completed counter. It is
	// owned by exactly one Driver (one per worker), so no
	// synchronization is required; the pool sums these across workers
	// after each finishes.
	ProgramsCompleted int

	// Solutions accumulates every validated candidate found by this
	// Driver. When FindAll is false, Run stops after the first.
	Solutions []Solution

	// OnComplete, when set, is invoked with every State that runs to
	// completion regardless of whether it matched a case — the opt-in
	// full generated-programs log described in SPEC_FULL.md §6.
	OnComplete func(*interp.State)

	stop bool
}

// Run executes the full DFS search over a combination's root State.
func (d *Driver) Run(root *interp.State) {
	d.step(root)
}

func (d *Driver) step(s *interp.State) {
	if d.stop {
		return
	}

	if s.IsFinished() {
		d.ProgramsCompleted++
		if d.OnComplete != nil {
			d.OnComplete(s)
		}
		d.checkForMatch(s)
		return
	}

	inst, _ := s.CurrentInstruction()

	if !inst.HasWildcard() {
		child := s.Fork()
		result := interp.Step(child)
		d.afterStep(child, result)
		return
	}

	variants := permute.Instruction(inst, s, d.Ctx.ConstantOperands())
	for _, variant := range variants {
		if d.stop {
			return
		}
		child := s.Fork()
		child.ReplaceInstruction(child.IP, variant)
		result := interp.Step(child)
		d.afterStep(child, result)
	}
}

func (d *Driver) afterStep(child *interp.State, result interp.Result) {
	switch result.Status {
	case interp.Dead:
		return
	case interp.Terminated:
		d.ProgramsCompleted++
		if d.OnComplete != nil {
			d.OnComplete(child)
		}
		d.checkForMatch(child)
		return
	case interp.Advance:
		if child.IsFinished() {
			// step() will checkForMatch on this State via its own
			// IsFinished branch; checking here too would scan the same
			// locals twice and, under FindAll, double-append the same
			// Solution.
			d.step(child)
			return
		}
		d.checkForMatch(child)
		if d.stop {
			return
		}
		d.step(child)
	}
}

// checkForMatch scans the State's locals for one matching case[0]'s
// expected output (original_source's expect()); on a hit it runs full case
// validation. A Compare error (different tags, or a precision tag
// mismatch) counts as a non-match here and in validateAllCases; it does
// not abort the search.
func (d *Driver) checkForMatch(s *interp.State) {
	if len(d.Ctx.Cases) == 0 {
		return
	}
	case0 := d.Ctx.Cases[0]

	for _, local := range s.Locals {
		ok, err := value.Compare(local.Value, case0.Expected, d.Ctx.Precision)
		if err != nil || !ok {
			continue
		}
		d.validateAllCases(s, local.Name)
		if d.stop {
			return
		}
	}
}

// validateAllCases re-runs the candidate's prefix (up to and including the
// current instruction) against every remaining case, each time appending a
// synthesized `ret <name>` for the local that matched case[0]. A full match
// across every case promotes the candidate to a Solution.
func (d *Driver) validateAllCases(s *interp.State, matchedLocal string) {
	prefixLen := s.IP
	if s.Ret != nil {
		// The candidate already terminated via its own ret; the
		// prefix is the whole program, not IP (which was pushed past
		// the end by stepRet).
		prefixLen = len(s.Instructions)
	} else {
		prefixLen++
	}

	for i := 1; i < len(d.Ctx.Cases); i++ {
		c := d.Ctx.Cases[i]

		prefix := s.Prefix(prefixLen)
		synthesizedRet := bytecode.New(bytecode.Ret, bytecode.Label(matchedLocal))
		candidateInsts := append(append([]bytecode.Instruction{}, prefix...), synthesizedRet)

		validation := interp.NewRoot(d.Ctx.InputNames, c.Args, candidateInsts)
		runToCompletion(validation)

		if validation.Ret == nil {
			return
		}
		ok, err := value.Compare(*validation.Ret, c.Expected, d.Ctx.Precision)
		if err != nil || !ok {
			return
		}
	}

	prefix := s.Prefix(prefixLen)
	synthesizedRet := bytecode.New(bytecode.Ret, bytecode.Label(matchedLocal))
	full := append(append([]bytecode.Instruction{}, prefix...), synthesizedRet)

	d.Solutions = append(d.Solutions, Solution{Instructions: full})
	if !d.Ctx.FindAll {
		d.stop = true
	}
}

// runToCompletion interprets s one instruction at a time (no forking, no
// wildcards expected: validation programs are fully concrete) until it
// finishes or dies.
func runToCompletion(s *interp.State) {
	for !s.IsFinished() {
		result := interp.Step(s)
		if result.Status == interp.Dead || result.Status == interp.Terminated {
			return
		}
	}
}
