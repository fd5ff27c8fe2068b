package search

import (
	"testing"

	"github.com/briansteffens/cold/internal/bytecode"
	"github.com/briansteffens/cold/internal/coldcontext"
	"github.com/briansteffens/cold/internal/combiner"
	"github.com/briansteffens/cold/internal/interp"
	"github.com/briansteffens/cold/internal/value"
)

// TestTrivialLiteralScenario mirrors SPEC_FULL.md Scenario A: a single
// "let" pattern should be able to directly assign the expected literal to
// satisfy both cases.
func TestTrivialLiteralScenario(t *testing.T) {
	pattern := bytecode.Pattern{
		Name: "let",
		Instructions: []bytecode.Instruction{
			bytecode.New(bytecode.Let, bytecode.Wildcard(bytecode.Locals), bytecode.Wildcard(bytecode.Constants)),
		},
	}

	ctx := &coldcontext.Context{
		InputNames: []string{"z"},
		Cases: []coldcontext.Case{
			{Args: []value.Value{value.Int(0)}, Expected: value.Int(7)},
			{Args: []value.Value{value.Int(1)}, Expected: value.Int(7)},
		},
		Patterns:  []bytecode.Pattern{pattern},
		Constants: []value.Value{value.Int(7)},
		Precision: value.Int(0),
		Depth:     1,
	}

	insts, err := combiner.Materialize(ctx.Patterns, ctx.Depth, 0)
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}

	root := interp.NewRoot(ctx.InputNames, ctx.Cases[0].Args, insts)

	driver := &Driver{Ctx: ctx}
	driver.Run(root)

	if len(driver.Solutions) == 0 {
		t.Fatal("expected at least one solution for the trivial literal scenario")
	}
}

// TestIdentityScenario mirrors Scenario B: with an empty pattern library
// (depth 0), the input itself already satisfies every case.
func TestIdentityScenario(t *testing.T) {
	ctx := &coldcontext.Context{
		InputNames: []string{"z"},
		Cases: []coldcontext.Case{
			{Args: []value.Value{value.Int(3)}, Expected: value.Int(3)},
			{Args: []value.Value{value.Int(4)}, Expected: value.Int(4)},
		},
		Precision: value.Int(0),
		Depth:     0,
	}

	insts, err := combiner.Materialize(ctx.Patterns, ctx.Depth, 0)
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}

	root := interp.NewRoot(ctx.InputNames, ctx.Cases[0].Args, insts)

	driver := &Driver{Ctx: ctx}
	driver.Run(root)

	if len(driver.Solutions) == 0 {
		t.Fatal("expected the identity program to validate against every case")
	}
}

// TestFindFirstStopsEarly checks that, with FindAll false, the driver
// records exactly one solution even when more than one candidate would
// satisfy the cases.
func TestFindFirstStopsEarly(t *testing.T) {
	pattern := bytecode.Pattern{
		Name: "let",
		Instructions: []bytecode.Instruction{
			bytecode.New(bytecode.Let, bytecode.Wildcard(bytecode.Locals), bytecode.Wildcard(bytecode.Constants)),
		},
	}

	ctx := &coldcontext.Context{
		InputNames: []string{"z"},
		Cases: []coldcontext.Case{
			{Args: []value.Value{value.Int(0)}, Expected: value.Int(9)},
		},
		Patterns:  []bytecode.Pattern{pattern},
		Constants: []value.Value{value.Int(9), value.Int(9)},
		Precision: value.Int(0),
		Depth:     1,
		FindAll:   false,
	}

	insts, _ := combiner.Materialize(ctx.Patterns, ctx.Depth, 0)
	root := interp.NewRoot(ctx.InputNames, ctx.Cases[0].Args, insts)

	driver := &Driver{Ctx: ctx}
	driver.Run(root)

	if len(driver.Solutions) != 1 {
		t.Fatalf("expected exactly 1 solution when FindAll is false, got %d", len(driver.Solutions))
	}
}
