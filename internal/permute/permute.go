// Package permute expands a single wildcarded instruction into every
// concrete variant the search driver should fork into, applying the
// commutativity dedup for three-operand add/mul.
package permute

import (
	"github.com/briansteffens/cold/internal/bytecode"
	"github.com/briansteffens/cold/internal/interp"
)

// substitutionSource is the ordered list of candidate replacements for a
// single wildcard operand: Labels referencing current locals and/or
// Literals referencing context constants.
type substitutionSource struct {
	operands []bytecode.Operand
}

// sources builds, for one wildcard mask, the ordered list of candidate
// operands it may be replaced by: locals first (in local order), then
// constants (in declared order), matching original_source's
// count_param_substitutions/permute_param ordering.
func sources(mask bytecode.WildcardMask, s *interp.State, constants []bytecode.Operand) substitutionSource {
	var out []bytecode.Operand
	if mask&bytecode.Locals != 0 {
		for _, l := range s.Locals {
			out = append(out, bytecode.Label(l.Name))
		}
	}
	if mask&bytecode.Constants != 0 {
		out = append(out, constants...)
	}
	return substitutionSource{operands: out}
}

// Instruction enumerates every concrete variant of inst given the current
// search State and the context's constants, applying commutativity dedup
// when inst is a three-operand add/mul. Enumeration is vertical-major: the
// first wildcard operand varies fastest.
func Instruction(inst bytecode.Instruction, s *interp.State, constants []bytecode.Operand) []bytecode.Instruction {
	wildcardIdx := make([]int, 0, len(inst.Operands))
	var sourceLists []substitutionSource
	for i, op := range inst.Operands {
		if op.IsWildcard() {
			wildcardIdx = append(wildcardIdx, i)
			sourceLists = append(sourceLists, sources(op.Mask, s, constants))
		}
	}

	if len(wildcardIdx) == 0 {
		return []bytecode.Instruction{inst.Clone()}
	}

	counts := make([]int, len(sourceLists))
	total := 1
	for i, src := range sourceLists {
		counts[i] = len(src.operands)
		total *= counts[i]
	}
	if total == 0 {
		return nil
	}

	dedup := (inst.Opcode == bytecode.Add || inst.Opcode == bytecode.Mul) && len(inst.Operands) == 3
	seen := make(map[string]bool)

	out := make([]bytecode.Instruction, 0, total)
	for p := 0; p < total; p++ {
		tuple := make([]bytecode.Operand, len(wildcardIdx))
		rem := p
		div := 1
		for d := 0; d < len(wildcardIdx); d++ {
			idx := (rem / div) % counts[d]
			tuple[d] = sourceLists[d].operands[idx]
			div *= counts[d]
		}

		if dedup && shouldSkipCommutative(wildcardIdx, tuple, seen) {
			continue
		}

		candidate := inst.Clone()
		for d, slot := range wildcardIdx {
			candidate.Operands[slot] = tuple[d].Clone()
		}
		out = append(out, candidate)
	}

	return out
}

// shouldSkipCommutative implements original_source's unique_mask: for a
// three-operand add/mul (target, lhs, rhs), suppress (t, b, a) once (t, a,
// b) has already been accepted. Only wildcarded slots contribute their
// substituted operand to the key; a slot that isn't wildcarded keys as an
// empty placeholder, which is the same for every tuple because seen is
// local to one Instruction call.
func shouldSkipCommutative(wildcardIdx []int, tuple []bytecode.Operand, seen map[string]bool) bool {
	pos := map[int]bytecode.Operand{}
	for d, slot := range wildcardIdx {
		pos[slot] = tuple[d]
	}

	key := func(targetIdx, lhsIdx, rhsIdx int) string {
		return operandKey(pos[targetIdx]) + "|" + operandKey(pos[lhsIdx]) + "|" + operandKey(pos[rhsIdx])
	}

	straight := key(0, 1, 2)
	swapped := key(0, 2, 1)

	if seen[swapped] {
		return true
	}
	seen[straight] = true
	return false
}

func operandKey(op bytecode.Operand) string {
	switch op.Kind {
	case bytecode.OperandLabel:
		return "l:" + op.Label
	case bytecode.OperandLiteral:
		return "v:" + op.Literal.String()
	default:
		return "w"
	}
}
