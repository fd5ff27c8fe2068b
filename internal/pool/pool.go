// Package pool drives a bounded set of goroutines, each running the DFS
// search over one combination, and aggregates their progress and
// solutions. Grounded on sentra-language-sentra/internal/concurrency's
// goroutine+channel worker-pool idiom, adapted to per-worker counters that
// each worker adds into one mutex-guarded total when its combination
// finishes, rather than shared atomics, and on original_source's
// solve/solve_thread/print_total_status for the polling/progress shape.
package pool

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/semaphore"

	"github.com/briansteffens/cold/internal/coldcontext"
	"github.com/briansteffens/cold/internal/combiner"
	"github.com/briansteffens/cold/internal/emit"
	cerrors "github.com/briansteffens/cold/internal/errors"
	"github.com/briansteffens/cold/internal/interp"
	"github.com/briansteffens/cold/internal/search"
)

// Options controls one solve run's output behaviour, independent of the
// problem itself (which lives in coldcontext.Context).
type Options struct {
	Threads        int
	OutputDir      string
	StartCombo     int
	ComboCount     int // 0 means "to the end of the combination space"
	OutputAll      bool // write a solution.cold even for combinations that don't solve, for debugging
	NonInteractive bool
	HideSolutions  bool
	Progress       io.Writer
}

// workerResult is what a single combination's goroutine reports back; it
// is sent exactly once per goroutine, so the channel receive is the only
// synchronization the driver needs (per Go's memory model, a channel send
// happens-before the matching receive).
type workerResult struct {
	combo             int
	runID             uuid.UUID
	programsCompleted int
	solved            bool
	err               error
}

// Run drives the worker pool to completion: launches one goroutine per
// combination (bounded to opts.Threads concurrently), collects results,
// writes solutions to disk, and prints progress once a second.
func Run(ctx *coldcontext.Context, opts Options) error {
	total := ctx.CombinationCount()
	end := total
	if opts.ComboCount > 0 && opts.StartCombo+opts.ComboCount < end {
		end = opts.StartCombo + opts.ComboCount
	}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return cerrors.Wrap(cerrors.IOError, "creating output directory", err)
		}
	}

	sem := semaphore.NewWeighted(int64(maxInt(opts.Threads, 1)))
	cancelCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan workerResult, maxInt(opts.Threads, 1))

	var wg sync.WaitGroup

	progressDone := make(chan struct{})
	var progressCompleted int64
	var progressMu sync.Mutex
	go printProgress(opts, &progressCompleted, &progressMu, progressDone)

	var firstErr error

launchLoop:
	for combo := opts.StartCombo; combo < end; combo++ {
		if cancelCtx.Err() != nil {
			break
		}
		if err := sem.Acquire(cancelCtx, 1); err != nil {
			break launchLoop
		}

		wg.Add(1)
		go func(combo int) {
			defer wg.Done()
			defer sem.Release(1)
			res := runCombination(ctx, opts, combo)
			progressMu.Lock()
			progressCompleted += int64(res.programsCompleted)
			progressMu.Unlock()
			results <- res
		}(combo)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		if res.err != nil && firstErr == nil {
			firstErr = res.err
		}
		if res.solved {
			if opts.Progress != nil && !opts.HideSolutions {
				fmt.Fprintf(opts.Progress, "combination %d solved (run %s)\n", res.combo, res.runID)
			}
			if !ctx.FindAll {
				cancel()
			}
		}
	}

	close(progressDone)

	if firstErr != nil {
		return firstErr
	}
	return nil
}

func runCombination(ctx *coldcontext.Context, opts Options, combo int) workerResult {
	runID := uuid.New()

	insts, err := combiner.Materialize(ctx.Patterns, ctx.Depth, combo)
	if err != nil {
		return workerResult{combo: combo, runID: runID, err: err}
	}

	if len(ctx.Cases) == 0 {
		return workerResult{combo: combo, runID: runID, err: cerrors.New(cerrors.ParseError, "solve file declares no cases")}
	}

	root := interp.NewRoot(ctx.InputNames, ctx.Cases[0].Args, insts)

	driver := &search.Driver{Ctx: ctx}

	comboDir := ""
	if opts.OutputDir != "" {
		comboDir = filepath.Join(opts.OutputDir, fmt.Sprintf("%d", combo))
	}

	var generatedLog *os.File
	if ctx.LogGenerated && comboDir != "" {
		if err := os.MkdirAll(comboDir, 0o755); err == nil {
			if f, err := os.Create(filepath.Join(comboDir, "generated")); err == nil {
				generatedLog = f
				defer generatedLog.Close()
				driver.OnComplete = func(s *interp.State) {
					generatedLog.WriteString(emit.Program(ctx.InputNames, s.Instructions))
				}
			}
		}
	}

	driver.Run(root)

	solved := len(driver.Solutions) > 0

	if (solved || opts.OutputAll) && comboDir != "" {
		if err := writeSolutions(comboDir, ctx.InputNames, driver.Solutions); err != nil {
			return workerResult{combo: combo, runID: runID, programsCompleted: driver.ProgramsCompleted, err: err}
		}
	}

	return workerResult{
		combo:             combo,
		runID:             runID,
		programsCompleted: driver.ProgramsCompleted,
		solved:            solved,
	}
}

func writeSolutions(dir string, inputNames []string, solutions []search.Solution) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return cerrors.Wrap(cerrors.IOError, "creating combination output directory", err)
	}

	path := filepath.Join(dir, "solution.cold")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return cerrors.Wrap(cerrors.IOError, "opening solution file", err)
	}
	defer f.Close()

	for _, sol := range solutions {
		text := emit.Program(inputNames, sol.Instructions)
		if _, err := f.WriteString(text); err != nil {
			return cerrors.Wrap(cerrors.IOError, "writing solution file", err)
		}
	}
	return nil
}

func printProgress(opts Options, completed *int64, mu *sync.Mutex, done <-chan struct{}) {
	if opts.Progress == nil {
		return
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	interactive := !opts.NonInteractive && isatty.IsTerminal(os.Stdout.Fd())
	start := time.Now()

	render := func() {
		mu.Lock()
		n := *completed
		mu.Unlock()

		elapsed := time.Since(start).Seconds()
		rate := 0.0
		if elapsed > 0 {
			rate = float64(n) / elapsed
		}

		line := fmt.Sprintf("total: %s, running %s/sec", humanize.Comma(n), humanize.Comma(int64(rate)))
		if interactive {
			fmt.Fprintf(opts.Progress, "\r%s", line)
		} else {
			fmt.Fprintln(opts.Progress, line)
		}
	}

	for {
		select {
		case <-ticker.C:
			render()
		case <-done:
			render()
			if interactive {
				fmt.Fprintln(opts.Progress)
			}
			return
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
