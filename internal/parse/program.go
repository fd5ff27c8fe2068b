package parse

import (
	"io"

	"github.com/briansteffens/cold/internal/bytecode"
	cerrors "github.com/briansteffens/cold/internal/errors"
)

// Function is one parsed .cold function: a name, its declared parameter
// names (the leading "$" stripped), and its body instructions.
type Function struct {
	Name         string
	Params       []string
	Instructions []bytecode.Instruction
}

// Program reads a .cold file: each "def <name> $arg1 $arg2 ..." line opens
// a function; every following line (until the next def or EOF) is one of
// its instructions, in the emitter's operand encoding.
func Program(r io.Reader) ([]Function, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.IOError, "reading cold program", err)
	}

	var funcs []Function
	var cur *Function

	for _, line := range lines {
		fields := Split(line)
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "def" {
			if len(fields) < 2 {
				return nil, cerrors.New(cerrors.ParseError, "def line missing function name")
			}
			funcs = append(funcs, Function{Name: fields[1]})
			cur = &funcs[len(funcs)-1]
			for _, tok := range fields[2:] {
				if len(tok) == 0 || tok[0] != '$' {
					return nil, cerrors.Newf(cerrors.ParseError, "def parameter %q must start with $", tok)
				}
				cur.Params = append(cur.Params, tok[1:])
			}
			continue
		}

		if cur == nil {
			return nil, cerrors.New(cerrors.ParseError, "instruction appears before any def")
		}

		inst, err := Instruction(line)
		if err != nil {
			return nil, err
		}
		cur.Instructions = append(cur.Instructions, inst)
	}

	return funcs, nil
}

// FindFunction locates a function by name, matching original_source's
// convention that a program's entry point is named "main".
func FindFunction(funcs []Function, name string) (Function, bool) {
	for _, f := range funcs {
		if f.Name == name {
			return f, true
		}
	}
	return Function{}, false
}
