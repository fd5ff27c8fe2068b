package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/briansteffens/cold/internal/combiner"
	"github.com/briansteffens/cold/internal/emit"
	"github.com/briansteffens/cold/internal/parse"
	"github.com/briansteffens/cold/internal/solver"
)

// flagSet is a minimal "--name=value" / "--name" parser in the style of
// the teacher's hand-rolled CLI (no external flag/cobra dependency):
// positional arguments are collected separately from "--"-prefixed flags.
type flagSet struct {
	values      map[string]string
	positionals []string
}

func parseFlags(args []string) flagSet {
	fs := flagSet{values: map[string]string{}}
	for _, a := range args {
		if strings.HasPrefix(a, "--") {
			body := strings.TrimPrefix(a, "--")
			if idx := strings.IndexByte(body, '='); idx >= 0 {
				fs.values[body[:idx]] = body[idx+1:]
			} else {
				fs.values[body] = "true"
			}
			continue
		}
		fs.positionals = append(fs.positionals, a)
	}
	return fs
}

func (f flagSet) str(name, def string) string {
	if v, ok := f.values[name]; ok {
		return v
	}
	return def
}

func (f flagSet) intv(name string, def int) int {
	v, ok := f.values[name]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func (f flagSet) boolv(name string) bool {
	_, ok := f.values[name]
	return ok
}

func solveCommand(args []string) error {
	fs := parseFlags(args)
	if len(fs.positionals) != 1 {
		return fmt.Errorf("solve requires exactly one solver file argument")
	}

	_, hasCombo := fs.values["combination"]
	_, hasCount := fs.values["combination-count"]

	opts := solver.SolveOptions{
		SolveFile:        fs.positionals[0],
		Threads:          fs.intv("threads", 4),
		OutputDir:        fs.str("output-dir", "output"),
		Combination:      fs.intv("combination", 0),
		CombinationCount: fs.intv("combination-count", 0),
		CombinationAll:   fs.boolv("all") || (!hasCombo && !hasCount),
		NonInteractive:   fs.boolv("non-interactive"),
		HideSolutions:    fs.boolv("hide-solutions"),
		FindAll:          fs.boolv("all"),
		OutputAll:        fs.boolv("output-all"),
		LogGenerated:     fs.boolv("log-generated"),
		Progress:         os.Stdout,
	}

	return solver.Solve(opts)
}

func runCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("run requires a program file argument")
	}

	result, err := solver.Run(args[0], args[1:])
	if err != nil {
		return err
	}

	fmt.Println(result.String())
	return nil
}

func combinationsCommand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("combinations requires exactly one solver file argument")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening solver file: %w", err)
	}
	defer f.Close()

	patternDir := filepath.Join(filepath.Dir(args[0]), "patterns")
	ctx, err := parse.SolveFile(f, patternDir)
	if err != nil {
		return err
	}

	total := ctx.CombinationCount()
	for i := 0; i < total; i++ {
		insts, err := combiner.Materialize(ctx.Patterns, ctx.Depth, i)
		if err != nil {
			return err
		}
		fmt.Printf("combination %d:\n", i)
		fmt.Print(emit.Program(ctx.InputNames, insts))
	}
	return nil
}
