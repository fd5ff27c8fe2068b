// Package solver wires parsing, the worker pool and output options
// together into the two entry points the CLI needs: Solve and Run.
package solver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	cerrors "github.com/briansteffens/cold/internal/errors"
	"github.com/briansteffens/cold/internal/interp"
	"github.com/briansteffens/cold/internal/parse"
	"github.com/briansteffens/cold/internal/pool"
	"github.com/briansteffens/cold/internal/value"
)

// SolveOptions is the CLI-facing configuration for the solve sub-command.
type SolveOptions struct {
	SolveFile      string
	Threads          int
	OutputDir        string
	Combination      int
	CombinationCount int
	CombinationAll   bool
	NonInteractive bool
	HideSolutions  bool
	FindAll        bool
	OutputAll      bool
	LogGenerated   bool
	Progress       io.Writer
}

// Solve parses the named .solve file and runs the worker pool over it.
func Solve(opts SolveOptions) error {
	f, err := os.Open(opts.SolveFile)
	if err != nil {
		return cerrors.Wrap(cerrors.IOError, "opening solve file", err)
	}
	defer f.Close()

	patternDir := filepath.Join(filepath.Dir(opts.SolveFile), "patterns")

	ctx, err := parse.SolveFile(f, patternDir)
	if err != nil {
		return err
	}
	ctx.FindAll = opts.FindAll
	ctx.PrintSolutions = !opts.HideSolutions
	ctx.LogGenerated = opts.LogGenerated

	poolOpts := pool.Options{
		Threads:        opts.Threads,
		OutputDir:      opts.OutputDir,
		OutputAll:      opts.OutputAll,
		NonInteractive: opts.NonInteractive,
		HideSolutions:  opts.HideSolutions,
		Progress:       opts.Progress,
	}

	if !opts.CombinationAll {
		poolOpts.StartCombo = opts.Combination
		poolOpts.ComboCount = 1
		if opts.CombinationCount > 0 {
			poolOpts.ComboCount = opts.CombinationCount
		}
	}

	return pool.Run(ctx, poolOpts)
}

// Run parses a .cold program, locates its "main" function, binds args
// positionally to its declared parameters, and interprets to completion,
// returning the resulting value.
func Run(programFile string, args []string) (value.Value, error) {
	f, err := os.Open(programFile)
	if err != nil {
		return value.Value{}, cerrors.Wrap(cerrors.IOError, "opening program file", err)
	}
	defer f.Close()

	funcs, err := parse.Program(f)
	if err != nil {
		return value.Value{}, err
	}

	main, ok := parse.FindFunction(funcs, "main")
	if !ok {
		return value.Value{}, cerrors.New(cerrors.ParseError, `program has no "main" function`)
	}

	if len(args) != len(main.Params) {
		return value.Value{}, cerrors.Newf(cerrors.ParseError, "main takes %d argument(s), got %d", len(main.Params), len(args))
	}

	argValues := make([]value.Value, len(args))
	for i, a := range args {
		v, err := value.Parse(a)
		if err != nil {
			return value.Value{}, err
		}
		argValues[i] = v
	}

	interp.PrintFn = func(v value.Value) {
		fmt.Println(v.String())
	}
	defer func() { interp.PrintFn = nil }()

	root := interp.NewRoot(main.Params, argValues, main.Instructions)
	for !root.IsFinished() {
		result := interp.Step(root)
		if result.Status == interp.Dead {
			return value.Value{}, cerrors.Wrap(cerrors.TypeError, "program failed during execution", result.Err)
		}
		if result.Status == interp.Terminated {
			break
		}
	}

	if root.Ret == nil {
		return value.Value{}, cerrors.New(cerrors.TypeError, "program terminated without returning a value")
	}
	return *root.Ret, nil
}
