package bytecode

// Instruction is one line of cold bytecode: an opcode plus its ordered
// operands. PatternDepth records which combiner slot (0-indexed) an
// instruction originated from; it is -1 for instructions that were never
// produced by the combiner (e.g. a synthesised ret during case
// validation).
type Instruction struct {
	Opcode      Opcode
	Operands    []Operand
	PatternDepth int
}

// New builds an Instruction with PatternDepth unset (-1).
func New(op Opcode, operands ...Operand) Instruction {
	return Instruction{Opcode: op, Operands: operands, PatternDepth: -1}
}

// Clone deep-copies an instruction and every one of its operands. The
// combiner, permuter and search driver all rely on this to keep ownership
// boundaries crisp: a cloned instruction never aliases the operand slice or
// any embedded Value of its source.
func (i Instruction) Clone() Instruction {
	operands := make([]Operand, len(i.Operands))
	for idx, op := range i.Operands {
		operands[idx] = op.Clone()
	}
	return Instruction{Opcode: i.Opcode, Operands: operands, PatternDepth: i.PatternDepth}
}

// HasWildcard reports whether any operand of the instruction is a
// Wildcard, i.e. whether the permuter must touch it before it can be
// interpreted.
func (i Instruction) HasWildcard() bool {
	for _, op := range i.Operands {
		if op.IsWildcard() {
			return true
		}
	}
	return false
}

// WithOperand returns a clone of the instruction with operand index idx
// replaced, leaving the source instruction unmodified. The permuter does
// not call it; it clones once and fills every wildcard slot itself.
func (i Instruction) WithOperand(idx int, replacement Operand) Instruction {
	out := i.Clone()
	out.Operands[idx] = replacement.Clone()
	return out
}

// Pattern is an ordered list of instructions read from one .pattern file,
// possibly containing wildcards and the Nxt placeholder.
type Pattern struct {
	Name         string
	Instructions []Instruction
}

// CloneInstructions deep-copies the pattern's instruction list, stamping
// each with the given depth, and dropping any Nxt placeholders — the shape
// the combiner needs when splicing a pattern into a combination.
func (p Pattern) CloneInstructions(depth int) []Instruction {
	out := make([]Instruction, 0, len(p.Instructions))
	for _, inst := range p.Instructions {
		if inst.Opcode == Nxt {
			continue
		}
		clone := inst.Clone()
		clone.PatternDepth = depth
		out = append(out, clone)
	}
	return out
}
