package value

import (
	"math"
	"math/big"

	cerrors "github.com/briansteffens/cold/internal/errors"
)

// BinOp names the arithmetic opcodes that share a single dispatch table.
type BinOp int

const (
	OpAdd BinOp = iota
	OpMul
	OpDiv
	OpExp
)

// Arith applies op to a and b, which must already have passed
// TypeCheckArith, and returns a freshly owned result Value.
func Arith(op BinOp, a, b Value) (Value, error) {
	switch a.Tag {
	case I32:
		return arithInt(op, a.I, b.I)
	case F32:
		return arithFloat32(op, a.F, b.F)
	case F64HP:
		return arithHP(op, a.HP, b.HP)
	default:
		return Value{}, cerrors.Newf(cerrors.TypeError, "arithmetic not defined for tag %s", a.Tag)
	}
}

func arithInt(op BinOp, a, b int32) (Value, error) {
	switch op {
	case OpAdd:
		return Int(a + b), nil
	case OpMul:
		return Int(a * b), nil
	case OpDiv:
		if b == 0 {
			return Value{}, cerrors.New(cerrors.TypeError, "integer division by zero")
		}
		return Int(a / b), nil
	case OpExp:
		return Int(int32(math.Pow(float64(a), float64(b)))), nil
	default:
		return Value{}, cerrors.New(cerrors.TypeError, "unknown binary opcode")
	}
}

func arithFloat32(op BinOp, a, b float32) (Value, error) {
	switch op {
	case OpAdd:
		return Float(a + b), nil
	case OpMul:
		return Float(a * b), nil
	case OpDiv:
		return Float(a / b), nil
	case OpExp:
		return Float(float32(math.Pow(float64(a), float64(b)))), nil
	default:
		return Value{}, cerrors.New(cerrors.TypeError, "unknown binary opcode")
	}
}

func arithHP(op BinOp, a, b *big.Float) (Value, error) {
	out := new(big.Float).SetPrec(hpPrecision)
	switch op {
	case OpAdd:
		out.Add(a, b)
	case OpMul:
		out.Mul(a, b)
	case OpDiv:
		out.Quo(a, b)
	case OpExp:
		af, _ := a.Float64()
		bf, _ := b.Float64()
		out.SetFloat64(math.Pow(af, bf))
	default:
		return Value{}, cerrors.New(cerrors.TypeError, "unknown binary opcode")
	}
	return HighPrecisionBig(out), nil
}

// UnaryOp names the transcendental opcodes sin/asin.
type UnaryOp int

const (
	OpSin UnaryOp = iota
	OpAsin
)

// Unary applies op to v, promoting integers to float. Higher-precision
// values round-trip through float64 since there is no extended-precision
// transcendental table available; this is noted as an accepted precision
// loss for sin/asin specifically.
func Unary(op UnaryOp, v Value) (Value, error) {
	if !v.IsNumeric() {
		return Value{}, cerrors.Newf(cerrors.TypeError, "sin/asin require a numeric operand, got %s", v.Tag)
	}

	f, err := v.AsFloat64()
	if err != nil {
		return Value{}, err
	}

	var result float64
	switch op {
	case OpSin:
		result = math.Sin(f)
	case OpAsin:
		if f < -1 || f > 1 {
			return Value{}, cerrors.Newf(cerrors.TypeError, "asin argument %v out of domain [-1, 1]", f)
		}
		result = math.Asin(f)
	default:
		return Value{}, cerrors.New(cerrors.TypeError, "unknown unary opcode")
	}

	switch v.Tag {
	case I32, F32:
		return Float(float32(result)), nil
	case F64HP:
		return HighPrecision(result), nil
	default:
		return Value{}, cerrors.Newf(cerrors.TypeError, "unreachable tag %s", v.Tag)
	}
}
