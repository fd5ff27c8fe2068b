package value

import "testing"

func TestParseRoundTrip(t *testing.T) {
	cases := []string{"7", "-3", "3.5f", "0.0f", "2.5L"}

	for _, tok := range cases {
		v, err := Parse(tok)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tok, err)
		}

		v2, err := Parse(v.String())
		if err != nil {
			t.Fatalf("Parse(%q) (round trip of %q) returned error: %v", v.String(), tok, err)
		}

		ok, err := Compare(v, v2, exactPrecisionFor(v))
		if err != nil {
			t.Fatalf("Compare returned error: %v", err)
		}
		if !ok {
			t.Errorf("round trip mismatch: %q -> %q -> %q", tok, v.String(), v2.String())
		}
	}
}

func exactPrecisionFor(v Value) Value {
	switch v.Tag {
	case F32:
		return Float(0)
	case F64HP:
		return HighPrecision(0)
	default:
		return v
	}
}

func TestCompareIntExact(t *testing.T) {
	a := Int(5)
	b := Int(5)
	c := Int(6)

	ok, err := Compare(a, b, Int(0))
	if err != nil || !ok {
		t.Fatalf("expected 5 == 5, got ok=%v err=%v", ok, err)
	}

	ok, err = Compare(a, c, Int(0))
	if err != nil || ok {
		t.Fatalf("expected 5 != 6, got ok=%v err=%v", ok, err)
	}
}

func TestCompareFloatTolerance(t *testing.T) {
	a := Float(2.0)
	b := Float(3.49)
	precision := Float(1.5)

	ok, err := Compare(a, b, precision)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Errorf("expected |2.0 - 3.49| <= 1.5 to compare equal")
	}

	tight := Float(0.5)
	ok, err = Compare(a, b, tight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("expected |2.0 - 3.49| <= 0.5 to compare unequal")
	}
}

func TestComparePrecisionTagMismatchIsFatal(t *testing.T) {
	a := Float(1.0)
	b := Float(1.0)
	wrongPrecision := HighPrecision(0)

	_, err := Compare(a, b, wrongPrecision)
	if err == nil {
		t.Fatal("expected an error comparing floats against a higher-precision precision value")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	v := HighPrecision(1.5)
	clone := v.Clone()
	clone.HP.SetFloat64(99)

	orig, _ := v.AsFloat64()
	if orig == 99 {
		t.Fatal("Clone aliased the original big.Float")
	}
}
