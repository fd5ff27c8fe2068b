package parse

import (
	"io"

	"github.com/briansteffens/cold/internal/bytecode"
	cerrors "github.com/briansteffens/cold/internal/errors"
)

// Pattern reads a .pattern file: one instruction per line, possibly
// containing wildcard and nxt placeholder instructions.
func Pattern(name string, r io.Reader) (bytecode.Pattern, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return bytecode.Pattern{}, cerrors.Wrap(cerrors.IOError, "reading pattern file", err)
	}

	insts := make([]bytecode.Instruction, 0, len(lines))
	for _, line := range lines {
		inst, err := Instruction(line)
		if err != nil {
			return bytecode.Pattern{}, err
		}
		insts = append(insts, inst)
	}

	return bytecode.Pattern{Name: name, Instructions: insts}, nil
}
