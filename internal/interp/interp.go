package interp

import (
	"github.com/briansteffens/cold/internal/bytecode"
	cerrors "github.com/briansteffens/cold/internal/errors"
	"github.com/briansteffens/cold/internal/value"
)

// Status is the tri-state result of interpreting one instruction. Dead
// signals a per-candidate type error: the search driver prunes the branch
// silently rather than aborting the whole process (see the REDESIGN FLAGS
// resolution recorded in DESIGN.md).
type Status int

const (
	Advance Status = iota
	Terminated
	Dead
)

// Result carries a Status plus, for Dead, the underlying diagnostic (the
// search driver discards it; solver.Run returns it wrapped in its error).
type Result struct {
	Status Status
	Err    error
}

func advance() Result    { return Result{Status: Advance} }
func terminated() Result { return Result{Status: Terminated} }
func dead(err error) Result {
	return Result{Status: Dead, Err: err}
}

// resolve turns an Operand into a concrete Value. Wildcard operands must
// never reach here: the permuter is required to have replaced them before
// the instruction is interpreted.
func resolve(s *State, op bytecode.Operand) (value.Value, error) {
	switch op.Kind {
	case bytecode.OperandLiteral:
		return op.Literal, nil
	case bytecode.OperandLabel:
		local, ok := s.FindLocal(op.Label)
		if !ok {
			return value.Value{}, cerrors.Newf(cerrors.TypeError, "undefined local %q", op.Label)
		}
		return local.Value, nil
	default:
		return value.Value{}, cerrors.New(cerrors.TypeError, "unresolved wildcard operand reached the interpreter")
	}
}

// Step executes the instruction at s.IP, mutating s in place, and reports
// what happened. The instruction must not contain any Wildcard operand.
func Step(s *State) Result {
	inst, ok := s.CurrentInstruction()
	if !ok {
		return terminated()
	}

	switch inst.Opcode {
	case bytecode.Let:
		return stepLet(s, inst)
	case bytecode.Add:
		return stepBinary(s, inst, value.OpAdd)
	case bytecode.Mul:
		return stepBinary(s, inst, value.OpMul)
	case bytecode.Div:
		return stepBinary(s, inst, value.OpDiv)
	case bytecode.Exp:
		return stepBinary(s, inst, value.OpExp)
	case bytecode.Sin:
		return stepUnary(s, inst, value.OpSin)
	case bytecode.Asin:
		return stepUnary(s, inst, value.OpAsin)
	case bytecode.Jmp:
		return stepJmp(s, inst)
	case bytecode.Cmp:
		return stepCmp(s, inst)
	case bytecode.Ret:
		return stepRet(s, inst)
	case bytecode.Prt:
		return stepPrt(s, inst)
	case bytecode.Nxt:
		return dead(cerrors.New(cerrors.TypeError, "nxt placeholder reached the interpreter"))
	default:
		return dead(cerrors.Newf(cerrors.TypeError, "unknown opcode %v", inst.Opcode))
	}
}

func stepLet(s *State, inst bytecode.Instruction) Result {
	if len(inst.Operands) != 2 {
		return dead(cerrors.New(cerrors.TypeError, "let requires exactly 2 operands"))
	}
	targetOp := inst.Operands[0]
	if targetOp.Kind != bytecode.OperandLabel {
		return dead(cerrors.New(cerrors.TypeError, "let target must be a label"))
	}
	src, err := resolve(s, inst.Operands[1])
	if err != nil {
		return dead(err)
	}
	s.SetLocal(targetOp.Label, src.Clone())
	s.IP++
	return advance()
}

func stepBinary(s *State, inst bytecode.Instruction, op value.BinOp) Result {
	if len(inst.Operands) != 3 {
		return dead(cerrors.New(cerrors.TypeError, "binary arithmetic requires exactly 3 operands"))
	}
	targetOp := inst.Operands[0]
	if targetOp.Kind != bytecode.OperandLabel {
		return dead(cerrors.New(cerrors.TypeError, "arithmetic target must be a label"))
	}

	lhs, err := resolve(s, inst.Operands[1])
	if err != nil {
		return dead(err)
	}
	rhs, err := resolve(s, inst.Operands[2])
	if err != nil {
		return dead(err)
	}

	if op == value.OpExp && (lhs.Tag != value.F32 && lhs.Tag != value.F64HP) {
		return dead(cerrors.Newf(cerrors.TypeError, "exp is only defined on float tags, got %s", lhs.Tag))
	}

	if err := value.TypeCheckArith(inst.Opcode.String(), lhs, rhs); err != nil {
		return dead(err)
	}

	result, err := value.Arith(op, lhs, rhs)
	if err != nil {
		return dead(err)
	}

	s.SetLocal(targetOp.Label, result)
	s.IP++
	return advance()
}

func stepUnary(s *State, inst bytecode.Instruction, op value.UnaryOp) Result {
	if len(inst.Operands) != 2 {
		return dead(cerrors.New(cerrors.TypeError, "sin/asin require exactly 2 operands"))
	}
	targetOp := inst.Operands[0]
	if targetOp.Kind != bytecode.OperandLabel {
		return dead(cerrors.New(cerrors.TypeError, "sin/asin target must be a label"))
	}

	src, err := resolve(s, inst.Operands[1])
	if err != nil {
		return dead(err)
	}

	result, err := value.Unary(op, src)
	if err != nil {
		return dead(err)
	}

	s.SetLocal(targetOp.Label, result)
	s.IP++
	return advance()
}

func stepJmp(s *State, inst bytecode.Instruction) Result {
	if len(inst.Operands) != 1 || inst.Operands[0].Kind != bytecode.OperandLiteral {
		return dead(cerrors.New(cerrors.TypeError, "jmp requires one integer literal operand"))
	}
	target := inst.Operands[0].Literal
	if target.Tag != value.I32 {
		return dead(cerrors.New(cerrors.TypeError, "jmp target must be an int literal"))
	}
	s.IP = int(target.I)
	return advance()
}

func stepCmp(s *State, inst bytecode.Instruction) Result {
	if len(inst.Operands) != 3 {
		return dead(cerrors.New(cerrors.TypeError, "cmp requires exactly 3 operands"))
	}
	a, err := resolve(s, inst.Operands[0])
	if err != nil {
		return dead(err)
	}
	b, err := resolve(s, inst.Operands[1])
	if err != nil {
		return dead(err)
	}
	if a.Tag != value.I32 || b.Tag != value.I32 {
		return dead(cerrors.New(cerrors.TypeError, "cmp operands must be int"))
	}

	targetOp := inst.Operands[2]
	if targetOp.Kind != bytecode.OperandLiteral || targetOp.Literal.Tag != value.I32 {
		return dead(cerrors.New(cerrors.TypeError, "cmp target must be an int literal"))
	}

	if a.I == b.I {
		s.IP = int(targetOp.Literal.I)
	} else {
		s.IP++
	}
	return advance()
}

func stepRet(s *State, inst bytecode.Instruction) Result {
	if len(inst.Operands) != 1 {
		return dead(cerrors.New(cerrors.TypeError, "ret requires exactly 1 operand"))
	}
	v, err := resolve(s, inst.Operands[0])
	if err != nil {
		return dead(err)
	}
	cloned := v.Clone()
	s.Ret = &cloned
	s.IP = len(s.Instructions)
	return terminated()
}

func stepPrt(s *State, inst bytecode.Instruction) Result {
	if len(inst.Operands) != 1 {
		return dead(cerrors.New(cerrors.TypeError, "prt requires exactly 1 operand"))
	}
	v, err := resolve(s, inst.Operands[0])
	if err != nil {
		return dead(err)
	}
	if PrintFn != nil {
		PrintFn(v)
	}
	s.IP++
	return advance()
}

// PrintFn is swapped in by the run sub-command to give prt real stdout
// output; the search driver leaves it nil so prt is a no-op side effect
// during synthesis.
var PrintFn func(value.Value)
