package permute

import (
	"testing"

	"github.com/briansteffens/cold/internal/bytecode"
	"github.com/briansteffens/cold/internal/interp"
	"github.com/briansteffens/cold/internal/value"
)

func stateWithLocals(names ...string) *interp.State {
	s := interp.NewRoot(names, valuesFor(names), nil)
	return s
}

func valuesFor(names []string) []value.Value {
	out := make([]value.Value, len(names))
	for i := range names {
		out[i] = value.Int(int32(i))
	}
	return out
}

func TestInstructionNoWildcardReturnsOneVariant(t *testing.T) {
	s := stateWithLocals("a", "b")
	inst := bytecode.New(bytecode.Add, bytecode.Label("a"), bytecode.Label("a"), bytecode.Label("b"))

	variants := Instruction(inst, s, nil)
	if len(variants) != 1 {
		t.Fatalf("expected 1 variant for a wildcard-free instruction, got %d", len(variants))
	}
}

func TestInstructionCountsMatchProductOfSources(t *testing.T) {
	s := stateWithLocals("a", "b", "c")
	constants := []bytecode.Operand{bytecode.Literal(value.Int(1)), bytecode.Literal(value.Int(2))}

	inst := bytecode.New(bytecode.Let, bytecode.Label("target"), bytecode.Wildcard(bytecode.Locals|bytecode.Constants))
	variants := Instruction(inst, s, constants)

	expected := 3 + 2 // 3 locals + 2 constants
	if len(variants) != expected {
		t.Fatalf("expected %d variants, got %d", expected, len(variants))
	}
}

func TestInstructionDedupsCommutativeAddMul(t *testing.T) {
	s := stateWithLocals("a", "b")

	inst := bytecode.New(bytecode.Add,
		bytecode.Label("target"),
		bytecode.Wildcard(bytecode.Locals),
		bytecode.Wildcard(bytecode.Locals))

	variants := Instruction(inst, s, nil)

	// Without dedup this would be 2*2=4 (including (a,a) and (b,b));
	// vertical-major order yields (t,b,a) before (t,a,b), so (t,a,b) is
	// suppressed, leaving (a,a), (b,a), (b,b) = 3.
	if len(variants) != 3 {
		t.Fatalf("expected 3 deduped variants, got %d: %+v", len(variants), variants)
	}
}

func TestInstructionNoDedupForNonCommutativeOpcode(t *testing.T) {
	s := stateWithLocals("a", "b")

	inst := bytecode.New(bytecode.Div,
		bytecode.Label("target"),
		bytecode.Wildcard(bytecode.Locals),
		bytecode.Wildcard(bytecode.Locals))

	variants := Instruction(inst, s, nil)
	if len(variants) != 4 {
		t.Fatalf("expected 4 variants for div (no dedup), got %d", len(variants))
	}
}
