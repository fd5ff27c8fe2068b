// Command cold is the inductive program synthesiser's CLI: solve searches
// for a program matching a set of cases, run interprets an already-written
// .cold program, and combinations lists the instruction lists a .solve
// file's pattern library would produce.
package main

import (
	"fmt"
	"os"
)

// commandAliases lets short forms stand in for the full sub-command name,
// mirroring the teacher CLI's alias map.
var commandAliases = map[string]string{
	"s": "solve",
	"r": "run",
	"c": "combinations",
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	cmd := args[0]
	rest := args[1:]

	switch cmd {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-v", "version":
		fmt.Println("cold 0.1.0")
		return 0
	}

	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	var err error
	switch cmd {
	case "solve":
		err = solveCommand(rest)
	case "run":
		err = runCommand(rest)
	case "combinations":
		err = combinationsCommand(rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		printUsage()
		return 1
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "cold: %v\n", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Println(`usage:
  cold solve <solver-file> [--combination=N] [--combination-count=N] [--threads=N] [--output-dir=DIR] [--all] [--non-interactive] [--hide-solutions]
  cold run <program.cold> <arg1> <arg2> ...
  cold combinations <solver-file>`)
}
