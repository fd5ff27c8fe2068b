// Package parse implements cold's line-oriented readers for .solve,
// .pattern and .cold files: trivial tokenizers over the data model in
// internal/bytecode, internal/value and internal/coldcontext, grounded on
// original_source/src/compiler.c's trim/read_lines/split helpers.
package parse

import (
	"bufio"
	"io"
	"strings"
)

// ReadLines splits r into trimmed, non-blank, comment-stripped lines. A
// "#" anywhere on a line begins a trailing comment, matching the .solve
// grammar; .pattern and .cold files simply never contain one.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	var out []string
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Split tokenizes a line on runs of whitespace, dropping zero-length segments,
// matching original_source's split().
func Split(line string) []string {
	fields := strings.Fields(line)
	return fields
}
