package parse

import (
	"strings"

	"github.com/briansteffens/cold/internal/bytecode"
	cerrors "github.com/briansteffens/cold/internal/errors"
	"github.com/briansteffens/cold/internal/value"
)

// Operand parses one operand token in the emitter's encoding: "$name" is a
// Label, "!mask" (mask letters "l"/"c") is a Wildcard, anything else is a
// Literal parsed via value.Parse.
func Operand(token string) (bytecode.Operand, error) {
	if token == "" {
		return bytecode.Operand{}, cerrors.New(cerrors.ParseError, "empty operand token")
	}

	if strings.HasPrefix(token, "$") {
		return bytecode.Label(token[1:]), nil
	}

	if strings.HasPrefix(token, "!") {
		mask, err := parseMask(token[1:])
		if err != nil {
			return bytecode.Operand{}, err
		}
		return bytecode.Wildcard(mask), nil
	}

	v, err := value.Parse(token)
	if err != nil {
		return bytecode.Operand{}, err
	}
	return bytecode.Literal(v), nil
}

func parseMask(letters string) (bytecode.WildcardMask, error) {
	if letters == "" {
		return 0, cerrors.New(cerrors.ParseError, "wildcard operand has no mask letters")
	}
	var mask bytecode.WildcardMask
	for _, c := range letters {
		switch c {
		case 'l':
			mask |= bytecode.Locals
		case 'c':
			mask |= bytecode.Constants
		default:
			return 0, cerrors.Newf(cerrors.ParseError, "unknown wildcard mask letter %q", c)
		}
	}
	return mask, nil
}

// Instruction parses one instruction line: opcode mnemonic followed by its
// space-separated operand tokens.
func Instruction(line string) (bytecode.Instruction, error) {
	fields := Split(line)
	if len(fields) == 0 {
		return bytecode.Instruction{}, cerrors.New(cerrors.ParseError, "empty instruction line")
	}

	op, ok := bytecode.OpcodeFromString(fields[0])
	if !ok {
		return bytecode.Instruction{}, cerrors.Newf(cerrors.ParseError, "unknown opcode %q", fields[0])
	}

	operands := make([]bytecode.Operand, 0, len(fields)-1)
	for _, tok := range fields[1:] {
		operand, err := Operand(tok)
		if err != nil {
			return bytecode.Instruction{}, err
		}
		operands = append(operands, operand)
	}

	return bytecode.New(op, operands...), nil
}
