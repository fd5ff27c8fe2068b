// Package emit writes a validated instruction list as .cold source text:
// a "def main $arg1 $arg2 ..." header followed by indented instruction
// lines, in the operand encoding described by SPEC_FULL.md §4.7.
package emit

import (
	"fmt"
	"strings"

	"github.com/briansteffens/cold/internal/bytecode"
)

// Program renders instructions as a complete .cold function named "main"
// taking inputNames as its declared parameters.
func Program(inputNames []string, instructions []bytecode.Instruction) string {
	var b strings.Builder

	b.WriteString("def main")
	for _, name := range inputNames {
		b.WriteString(" $")
		b.WriteString(name)
	}
	b.WriteString("\n")

	for _, inst := range instructions {
		b.WriteString("    ")
		b.WriteString(Instruction(inst))
		b.WriteString("\n")
	}

	return b.String()
}

// Instruction renders one instruction line: opcode followed by its
// space-separated operands.
func Instruction(inst bytecode.Instruction) string {
	parts := make([]string, 0, len(inst.Operands)+1)
	parts = append(parts, inst.Opcode.String())
	for _, op := range inst.Operands {
		parts = append(parts, Operand(op))
	}
	return strings.Join(parts, " ")
}

// Operand renders one operand in its textual form: "$name" for a label,
// "!mask" for a wildcard (letters "l"/"c"), and the literal's natural
// suffix-encoded form (see value.Value.String) for a literal.
func Operand(op bytecode.Operand) string {
	switch op.Kind {
	case bytecode.OperandLabel:
		return "$" + op.Label
	case bytecode.OperandWildcard:
		return "!" + op.Mask.String()
	case bytecode.OperandLiteral:
		return op.Literal.String()
	default:
		return fmt.Sprintf("<bad-operand-kind-%d>", op.Kind)
	}
}
