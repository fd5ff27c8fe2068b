// Package value implements cold's tagged scalar Value type: the only data
// that ever sits in a Local or flows through an instruction's operands.
package value

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	cerrors "github.com/briansteffens/cold/internal/errors"
)

// Tag identifies which variant of Value is populated.
type Tag int

const (
	// I32 is a 32-bit signed integer.
	I32 Tag = iota
	// F32 is an IEEE-754 single precision float.
	F32
	// F64HP is a "higher precision" float backed by math/big.Float, used
	// where the original language reached for a long double.
	F64HP
	// Str is a utf-8 string.
	Str
)

func (t Tag) String() string {
	switch t {
	case I32:
		return "i32"
	case F32:
		return "f32"
	case F64HP:
		return "f64hp"
	case Str:
		return "str"
	default:
		return "unknown"
	}
}

// hpPrecision is the mantissa bit width given to every F64HP big.Float, wide
// enough to comfortably exceed float64's 53 bits.
const hpPrecision = 192

// Value is cold's tagged scalar. Only the field matching Tag is meaningful.
type Value struct {
	Tag Tag
	I   int32
	F   float32
	HP  *big.Float
	S   string
}

// Int constructs an I32 value.
func Int(i int32) Value { return Value{Tag: I32, I: i} }

// Float constructs an F32 value.
func Float(f float32) Value { return Value{Tag: F32, F: f} }

// HighPrecision constructs an F64HP value from a float64 seed.
func HighPrecision(f float64) Value {
	return Value{Tag: F64HP, HP: new(big.Float).SetPrec(hpPrecision).SetFloat64(f)}
}

// HighPrecisionBig constructs an F64HP value directly from a *big.Float,
// re-precisioning a defensive clone so the caller's pointer stays theirs.
func HighPrecisionBig(f *big.Float) Value {
	return Value{Tag: F64HP, HP: new(big.Float).SetPrec(hpPrecision).Set(f)}
}

// String constructs a Str value.
func String(s string) Value { return Value{Tag: Str, S: s} }

// Clone deep-copies a Value; the only variant requiring real work is F64HP,
// whose big.Float must not be aliased across Locals.
func (v Value) Clone() Value {
	out := v
	if v.Tag == F64HP && v.HP != nil {
		out.HP = new(big.Float).SetPrec(hpPrecision).Set(v.HP)
	}
	return out
}

// IsNumeric reports whether the value is one of the three numeric tags.
func (v Value) IsNumeric() bool {
	return v.Tag == I32 || v.Tag == F32 || v.Tag == F64HP
}

// AsFloat64 widens a numeric value to float64 for use by transcendental
// functions that have no extended-precision implementation of their own.
func (v Value) AsFloat64() (float64, error) {
	switch v.Tag {
	case I32:
		return float64(v.I), nil
	case F32:
		return float64(v.F), nil
	case F64HP:
		f, _ := v.HP.Float64()
		return f, nil
	default:
		return 0, cerrors.Newf(cerrors.TypeError, "value of tag %s has no numeric representation", v.Tag)
	}
}

// Compare reports whether a and b are equal, applying precision-based
// tolerance for float tags. Integers and strings compare exactly. a and b
// must share a Tag; a precision tag mismatch (comparing a float value
// against a higher-precision precision, or vice versa) returns a
// PrecisionError. Compare itself does not abort anything; what happens on
// an error is up to the caller.
func Compare(a, b, precision Value) (bool, error) {
	if a.Tag != b.Tag {
		return false, cerrors.Newf(cerrors.TypeError, "cannot compare values of tag %s and %s", a.Tag, b.Tag)
	}

	switch a.Tag {
	case I32:
		return a.I == b.I, nil
	case Str:
		return a.S == b.S, nil
	case F32:
		if precision.Tag != F32 {
			return false, cerrors.Newf(cerrors.PrecisionError, "precision tag %s does not match operand tag %s", precision.Tag, a.Tag)
		}
		diff := a.F - b.F
		if diff < 0 {
			diff = -diff
		}
		return diff <= precision.F, nil
	case F64HP:
		if precision.Tag != F64HP {
			return false, cerrors.Newf(cerrors.PrecisionError, "precision tag %s does not match operand tag %s", precision.Tag, a.Tag)
		}
		diff := new(big.Float).SetPrec(hpPrecision).Sub(a.HP, b.HP)
		diff.Abs(diff)
		return diff.Cmp(precision.HP) <= 0, nil
	default:
		return false, cerrors.Newf(cerrors.TypeError, "value of tag %s is not comparable", a.Tag)
	}
}

// String renders the value in cold's canonical textual form: bare digits
// for an int, a trailing "f" for a float, a trailing "L" for a
// higher-precision float, and the raw string, unquoted, for a string
// literal (Parse reads any token it cannot read as a number back as a
// bare string).
func (v Value) String() string {
	switch v.Tag {
	case I32:
		return strconv.FormatInt(int64(v.I), 10)
	case F32:
		return formatFloat(float64(v.F)) + "f"
	case F64HP:
		f, _ := v.HP.Float64()
		_ = f
		return v.HP.Text('g', -1) + "L"
	case Str:
		return v.S
	default:
		return "<invalid>"
	}
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Parse reads a literal token in cold's canonical suffix encoding: a
// trailing "f" marks a float, a trailing "L" marks a higher-precision
// float, and no suffix (pure digits, optionally signed) marks an int.
// Anything else is parsed as a bare string literal. This mirrors the
// emitter's String method so parse(emit(v)) round-trips.
func Parse(token string) (Value, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Value{}, cerrors.New(cerrors.ParseError, "empty literal token")
	}

	if strings.HasSuffix(token, "f") {
		body := strings.TrimSuffix(token, "f")
		f, err := strconv.ParseFloat(body, 32)
		if err == nil {
			return Float(float32(f)), nil
		}
	}

	if strings.HasSuffix(token, "L") {
		body := strings.TrimSuffix(token, "L")
		bf, _, err := big.ParseFloat(body, 10, hpPrecision, big.ToNearestEven)
		if err == nil {
			return HighPrecisionBig(bf), nil
		}
	}

	if i, err := strconv.ParseInt(token, 10, 32); err == nil {
		return Int(int32(i)), nil
	}

	return String(token), nil
}

// TypeCheckArith reports an error if a and b cannot be used together as the
// two operands of an arithmetic opcode: both must be numeric and must share
// a tag.
func TypeCheckArith(opcode string, a, b Value) error {
	if !a.IsNumeric() || !b.IsNumeric() {
		return cerrors.Newf(cerrors.TypeError, "%s requires numeric operands, got %s and %s", opcode, a.Tag, b.Tag)
	}
	if a.Tag != b.Tag {
		return cerrors.Newf(cerrors.TypeError, "%s operands must share a tag, got %s and %s", opcode, a.Tag, b.Tag)
	}
	return nil
}

// Describe is a small debugging helper mirroring the teacher's habit of a
// one-line %v-friendly summary on data-model types.
func (v Value) Describe() string {
	return fmt.Sprintf("Value{%s %s}", v.Tag, v.String())
}
