package emit

import (
	"testing"

	"github.com/briansteffens/cold/internal/bytecode"
	"github.com/briansteffens/cold/internal/parse"
	"github.com/briansteffens/cold/internal/value"
)

func TestOperandRoundTripsThroughParse(t *testing.T) {
	operands := []bytecode.Operand{
		bytecode.Label("x"),
		bytecode.Literal(value.Int(3)),
		bytecode.Literal(value.Float(2.5)),
		bytecode.Wildcard(bytecode.Locals | bytecode.Constants),
	}

	for _, op := range operands {
		text := Operand(op)
		parsed, err := parse.Operand(text)
		if err != nil {
			t.Fatalf("parse.Operand(%q) failed: %v", text, err)
		}
		if parsed.Kind != op.Kind {
			t.Errorf("round trip kind mismatch for %q: got %v want %v", text, parsed.Kind, op.Kind)
		}
	}
}

func TestInstructionRoundTripsThroughParse(t *testing.T) {
	inst := bytecode.New(bytecode.Add, bytecode.Label("sum"), bytecode.Literal(value.Int(1)), bytecode.Literal(value.Int(2)))

	text := Instruction(inst)
	parsed, err := parse.Instruction(text)
	if err != nil {
		t.Fatalf("parse.Instruction(%q) failed: %v", text, err)
	}

	if parsed.Opcode != inst.Opcode {
		t.Errorf("opcode mismatch: got %v want %v", parsed.Opcode, inst.Opcode)
	}
	if len(parsed.Operands) != len(inst.Operands) {
		t.Fatalf("operand count mismatch: got %d want %d", len(parsed.Operands), len(inst.Operands))
	}
}

func TestProgramRendersHeaderAndIndentedBody(t *testing.T) {
	insts := []bytecode.Instruction{
		bytecode.New(bytecode.Ret, bytecode.Label("z")),
	}
	text := Program([]string{"z"}, insts)

	want := "def main $z\n    ret $z\n"
	if text != want {
		t.Errorf("Program output = %q, want %q", text, want)
	}
}
