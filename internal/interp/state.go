// Package interp implements cold's execution State, its forking discipline
// and the instruction-at-a-time interpreter.
package interp

import (
	"github.com/briansteffens/cold/internal/bytecode"
	"github.com/briansteffens/cold/internal/value"
)

// Local is a named binding in a State's local list.
type Local struct {
	Name  string
	Value value.Value
}

// State is one search/execution node: a program counter plus the local
// bindings and instruction list it sees. Every slot in Locals and
// Instructions carries an ownership flag at the matching index in
// LocalsOwned/InstOwned: true means this State is responsible for the
// object (it was created here), false means the slot merely borrows an
// ancestor's object and must never be mutated in place.
//
// Forking a State always produces a child whose slots are all borrowed;
// only a subsequent replacement (an arithmetic result, a permuted
// instruction) becomes owned by the child. This lets many search-tree
// nodes share an immutable instruction/local prefix without copying it.
type State struct {
	Locals      []*Local
	LocalsOwned []bool

	Instructions []bytecode.Instruction
	InstOwned    []bool

	IP  int
	Ret *value.Value
}

// NewRoot builds the State a combination search starts from: the declared
// inputs bound to one case's argument values, plus the combination's
// instructions, all owned by this (root) State.
func NewRoot(inputNames []string, args []value.Value, instructions []bytecode.Instruction) *State {
	locals := make([]*Local, len(inputNames))
	owned := make([]bool, len(inputNames))
	for i, name := range inputNames {
		locals[i] = &Local{Name: name, Value: args[i].Clone()}
		owned[i] = true
	}

	insts := make([]bytecode.Instruction, len(instructions))
	instOwned := make([]bool, len(instructions))
	for i, inst := range instructions {
		insts[i] = inst.Clone()
		instOwned[i] = true
	}

	return &State{
		Locals:       locals,
		LocalsOwned:  owned,
		Instructions: insts,
		InstOwned:    instOwned,
		IP:           0,
	}
}

// Fork produces a child State borrowing every current slot. The child's
// slices are freshly allocated (so appends/replacements never alias the
// parent's backing array) but every element pointer/value and ownership
// flag starts out a borrowed copy of the parent's.
func (s *State) Fork() *State {
	locals := make([]*Local, len(s.Locals))
	copy(locals, s.Locals)
	localsOwned := make([]bool, len(s.LocalsOwned))

	insts := make([]bytecode.Instruction, len(s.Instructions))
	copy(insts, s.Instructions)
	instOwned := make([]bool, len(s.InstOwned))

	var ret *value.Value
	if s.Ret != nil {
		r := s.Ret.Clone()
		ret = &r
	}

	return &State{
		Locals:       locals,
		LocalsOwned:  localsOwned,
		Instructions: insts,
		InstOwned:    instOwned,
		IP:           s.IP,
		Ret:          ret,
	}
}

// FindLocal returns the local bound to name, scanning in insertion order,
// matching original_source's find_local.
func (s *State) FindLocal(name string) (*Local, bool) {
	for _, l := range s.Locals {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// SetLocal assigns (owned) a value to name: if the name already exists the
// slot is replaced and marked owned by this State; otherwise a new slot is
// appended, also owned.
func (s *State) SetLocal(name string, v value.Value) {
	for i, l := range s.Locals {
		if l.Name == name {
			s.Locals[i] = &Local{Name: name, Value: v}
			s.LocalsOwned[i] = true
			return
		}
	}
	s.Locals = append(s.Locals, &Local{Name: name, Value: v})
	s.LocalsOwned = append(s.LocalsOwned, true)
}

// AppendLocal always adds a new owned local bound to name, even if a local
// of that name already exists; FindLocal then keeps returning the earlier
// binding. let does not use it: it goes through SetLocal so local names
// stay unique within a State.
func (s *State) AppendLocal(name string, v value.Value) {
	s.Locals = append(s.Locals, &Local{Name: name, Value: v})
	s.LocalsOwned = append(s.LocalsOwned, true)
}

// ReplaceInstruction substitutes instructions[idx] with a newly owned
// instruction, used by the search driver to install one permuted concrete
// variant of a wildcarded instruction into a fork.
func (s *State) ReplaceInstruction(idx int, inst bytecode.Instruction) {
	s.Instructions[idx] = inst
	s.InstOwned[idx] = true
}

// IsFinished reports whether the State has run off the end of its
// instruction list or already executed a ret.
func (s *State) IsFinished() bool {
	return s.Ret != nil || s.IP >= len(s.Instructions)
}

// CurrentInstruction returns the instruction at IP, or false if finished.
func (s *State) CurrentInstruction() (bytecode.Instruction, bool) {
	if s.IsFinished() {
		return bytecode.Instruction{}, false
	}
	return s.Instructions[s.IP], true
}

// Prefix builds a new instruction slice borrowing the first n instructions
// of s (used by case validation to build a synthesized ret onto a
// candidate's prefix without cloning the shared prefix).
func (s *State) Prefix(n int) []bytecode.Instruction {
	if n > len(s.Instructions) {
		n = len(s.Instructions)
	}
	out := make([]bytecode.Instruction, n)
	copy(out, s.Instructions[:n])
	return out
}
