package solver

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunInterpretsColdProgram(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "double.cold")

	program := "def main $x\n    add $y $x $x\n    ret $y\n"
	if err := os.WriteFile(path, []byte(program), 0o644); err != nil {
		t.Fatalf("failed to write test program: %v", err)
	}

	result, err := Run(path, []string{"21"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.I != 42 {
		t.Errorf("expected 42, got %v", result)
	}
}

func TestRunRejectsWrongArgCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.cold")
	if err := os.WriteFile(path, []byte("def main $x $y\n    ret $x\n"), 0o644); err != nil {
		t.Fatalf("failed to write test program: %v", err)
	}

	if _, err := Run(path, []string{"1"}); err == nil {
		t.Fatal("expected an error for a wrong argument count")
	}
}

func TestSolveFindsTrivialSolution(t *testing.T) {
	dir := t.TempDir()
	patternsDir := filepath.Join(dir, "patterns")
	if err := os.MkdirAll(patternsDir, 0o755); err != nil {
		t.Fatalf("failed to create patterns dir: %v", err)
	}

	if err := os.WriteFile(filepath.Join(patternsDir, "let.pattern"),
		[]byte("let !l !c\n"), 0o644); err != nil {
		t.Fatalf("failed to write pattern: %v", err)
	}

	solveFile := filepath.Join(dir, "problem.solve")
	contents := "precision 0\ndepth 1\npattern let\nconstant 9\ninput z\ncase (0) => 9\n"
	if err := os.WriteFile(solveFile, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write solve file: %v", err)
	}

	outputDir := filepath.Join(dir, "output")

	err := Solve(SolveOptions{
		SolveFile:      solveFile,
		Threads:        2,
		OutputDir:      outputDir,
		CombinationAll: true,
		NonInteractive: true,
	})
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}

	found := false
	_ = filepath.Walk(outputDir, func(path string, info os.FileInfo, err error) error {
		if err == nil && info != nil && info.Name() == "solution.cold" {
			found = true
		}
		return nil
	})
	if !found {
		t.Error("expected Solve to write a solution.cold file")
	}
}
