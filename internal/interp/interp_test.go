package interp

import (
	"testing"

	"github.com/briansteffens/cold/internal/bytecode"
	"github.com/briansteffens/cold/internal/value"
)

func TestStepLetBindsLocal(t *testing.T) {
	insts := []bytecode.Instruction{
		bytecode.New(bytecode.Let, bytecode.Label("x"), bytecode.Literal(value.Int(7))),
	}
	s := NewRoot(nil, nil, insts)

	res := Step(s)
	if res.Status != Advance {
		t.Fatalf("expected Advance, got %v (err=%v)", res.Status, res.Err)
	}

	local, ok := s.FindLocal("x")
	if !ok {
		t.Fatal("expected local x to be bound")
	}
	if local.Value.I != 7 {
		t.Errorf("expected x=7, got %v", local.Value)
	}
}

func TestStepAddComputesSum(t *testing.T) {
	insts := []bytecode.Instruction{
		bytecode.New(bytecode.Add, bytecode.Label("sum"), bytecode.Literal(value.Int(2)), bytecode.Literal(value.Int(3))),
	}
	s := NewRoot(nil, nil, insts)

	Step(s)

	local, ok := s.FindLocal("sum")
	if !ok || local.Value.I != 5 {
		t.Fatalf("expected sum=5, got local=%v ok=%v", local, ok)
	}
}

func TestStepRetTerminates(t *testing.T) {
	insts := []bytecode.Instruction{
		bytecode.New(bytecode.Ret, bytecode.Literal(value.Int(42))),
	}
	s := NewRoot(nil, nil, insts)

	res := Step(s)
	if res.Status != Terminated {
		t.Fatalf("expected Terminated, got %v", res.Status)
	}
	if s.Ret == nil || s.Ret.I != 42 {
		t.Fatalf("expected ret=42, got %v", s.Ret)
	}
	if !s.IsFinished() {
		t.Error("expected state to report finished after ret")
	}
}

func TestStepTypeMismatchIsDeadNotPanic(t *testing.T) {
	insts := []bytecode.Instruction{
		bytecode.New(bytecode.Add, bytecode.Label("t"), bytecode.Literal(value.Int(1)), bytecode.Literal(value.Float(1.0))),
	}
	s := NewRoot(nil, nil, insts)

	res := Step(s)
	if res.Status != Dead {
		t.Fatalf("expected Dead for mismatched operand tags, got %v", res.Status)
	}
}

func TestStepCmpJumpsOnEqual(t *testing.T) {
	insts := []bytecode.Instruction{
		bytecode.New(bytecode.Cmp, bytecode.Literal(value.Int(1)), bytecode.Literal(value.Int(1)), bytecode.Literal(value.Int(2))),
		bytecode.New(bytecode.Ret, bytecode.Literal(value.Int(0))),
		bytecode.New(bytecode.Ret, bytecode.Literal(value.Int(1))),
	}
	s := NewRoot(nil, nil, insts)

	Step(s)
	if s.IP != 2 {
		t.Fatalf("expected jump to ip=2 on equal compare, got ip=%d", s.IP)
	}
}

func TestStateForkBorrowsThenOwnsOnMutation(t *testing.T) {
	insts := []bytecode.Instruction{
		bytecode.New(bytecode.Let, bytecode.Label("x"), bytecode.Literal(value.Int(1))),
	}
	root := NewRoot([]string{"z"}, []value.Value{value.Int(9)}, insts)

	child := root.Fork()
	for i := range child.LocalsOwned {
		if child.LocalsOwned[i] {
			t.Errorf("expected fork to borrow local slot %d", i)
		}
	}

	Step(child)

	found := false
	for i, l := range child.Locals {
		if l.Name == "x" {
			found = true
			if !child.LocalsOwned[i] {
				t.Error("expected newly created local x to be owned by the child")
			}
		}
	}
	if !found {
		t.Fatal("expected local x to exist after stepping let")
	}

	// The parent must be unaffected by the child's mutation.
	if _, ok := root.FindLocal("x"); ok {
		t.Error("parent state was mutated by child's let")
	}
}
