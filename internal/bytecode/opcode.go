// Package bytecode defines cold's instruction and operand model: the
// small register-based bytecode (named locals) that patterns,
// combinations and programs are all built from.
package bytecode

// Opcode enumerates cold's instruction set.
type Opcode int

const (
	Let Opcode = iota
	Add
	Mul
	Div
	Exp
	Sin
	Asin
	Jmp
	Cmp
	Ret
	Prt
	// Nxt is the combiner's placeholder opcode: it never appears in a
	// program that reaches the interpreter, only in .pattern files
	// where it marks the boundary a later pattern's instructions are
	// spliced into.
	Nxt
)

var opcodeNames = map[Opcode]string{
	Let:  "let",
	Add:  "add",
	Mul:  "mul",
	Div:  "div",
	Exp:  "exp",
	Sin:  "sin",
	Asin: "asin",
	Jmp:  "jmp",
	Cmp:  "cmp",
	Ret:  "ret",
	Prt:  "prt",
	Nxt:  "nxt",
}

func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return "unknown"
}

// OpcodeFromString is the inverse of String, used by the .pattern/.cold
// parsers.
func OpcodeFromString(s string) (Opcode, bool) {
	for op, name := range opcodeNames {
		if name == s {
			return op, true
		}
	}
	return 0, false
}

// IsBinaryArith reports whether the opcode is one of the three-operand
// arithmetic opcodes (target, lhs, rhs): add, mul, div and exp. Only add
// and mul are commutative; the permuter's dedup checks for those two
// directly.
func (o Opcode) IsBinaryArith() bool {
	return o == Add || o == Mul || o == Div || o == Exp
}
