package parse

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/briansteffens/cold/internal/bytecode"
	"github.com/briansteffens/cold/internal/coldcontext"
	cerrors "github.com/briansteffens/cold/internal/errors"
	"github.com/briansteffens/cold/internal/value"
)

// defaultDepth matches original_source's parse_solver_file default when no
// "depth" directive is present.
const defaultDepth = 3

// SolveFile parses a .solve file into a Context. patternDir is the
// directory "pattern <name>" directives resolve against (a sibling
// "patterns" directory next to the solve file, matching
// original_source/src/solver.c's add_pattern).
func SolveFile(r io.Reader, patternDir string) (*coldcontext.Context, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.IOError, "reading solve file", err)
	}

	ctx := &coldcontext.Context{
		Depth:          defaultDepth,
		PrintSolutions: true,
	}

	for _, line := range lines {
		fields := Split(line)
		if len(fields) == 0 {
			continue
		}

		directive := fields[0]
		args := fields[1:]

		switch directive {
		case "precision":
			if len(args) != 1 {
				return nil, cerrors.New(cerrors.ParseError, "precision directive requires exactly one value")
			}
			v, err := value.Parse(args[0])
			if err != nil {
				return nil, err
			}
			ctx.Precision = v

		case "depth":
			if len(args) != 1 {
				return nil, cerrors.New(cerrors.ParseError, "depth directive requires exactly one value")
			}
			d, err := parseInt(args[0])
			if err != nil {
				return nil, err
			}
			ctx.Depth = d

		case "pattern":
			if len(args) != 1 {
				return nil, cerrors.New(cerrors.ParseError, "pattern directive requires exactly one name")
			}
			pat, err := loadPattern(patternDir, args[0])
			if err != nil {
				return nil, err
			}
			ctx.Patterns = append(ctx.Patterns, pat)

		case "constant":
			if len(args) != 1 {
				return nil, cerrors.New(cerrors.ParseError, "constant directive requires exactly one value")
			}
			v, err := value.Parse(args[0])
			if err != nil {
				return nil, err
			}
			ctx.Constants = append(ctx.Constants, v)

		case "input":
			if len(args) != 1 {
				return nil, cerrors.New(cerrors.ParseError, "input directive requires exactly one name")
			}
			ctx.InputNames = append(ctx.InputNames, strings.TrimPrefix(args[0], "$"))

		case "case":
			c, err := parseCase(args, len(ctx.InputNames))
			if err != nil {
				return nil, err
			}
			ctx.Cases = append(ctx.Cases, c)

		default:
			return nil, cerrors.Newf(cerrors.ParseError, "unknown solve directive %q", directive)
		}
	}

	return ctx, nil
}

// parseCase reads a "case (v1, v2, ...) => expected" directive's already
// space-split fields. Split() tokenizes on whitespace only, so this
// re-joins and re-parses the parenthesized argument list by hand to allow
// the conventional comma-separated case syntax.
func parseCase(fields []string, inputCount int) (coldcontext.Case, error) {
	joined := strings.Join(fields, " ")
	arrow := strings.Index(joined, "=>")
	if arrow < 0 {
		return coldcontext.Case{}, cerrors.New(cerrors.ParseError, "case directive missing =>")
	}

	argsPart := strings.TrimSpace(joined[:arrow])
	expectedPart := strings.TrimSpace(joined[arrow+2:])

	argsPart = strings.TrimPrefix(argsPart, "(")
	argsPart = strings.TrimSuffix(argsPart, ")")

	var argTokens []string
	if strings.TrimSpace(argsPart) != "" {
		for _, tok := range strings.Split(argsPart, ",") {
			argTokens = append(argTokens, strings.TrimSpace(tok))
		}
	}

	if len(argTokens) != inputCount {
		return coldcontext.Case{}, cerrors.Newf(cerrors.ParseError,
			"case has %d arguments, expected %d (matching declared inputs)", len(argTokens), inputCount)
	}

	args := make([]value.Value, len(argTokens))
	for i, tok := range argTokens {
		v, err := value.Parse(tok)
		if err != nil {
			return coldcontext.Case{}, err
		}
		args[i] = v
	}

	expected, err := value.Parse(expectedPart)
	if err != nil {
		return coldcontext.Case{}, err
	}

	return coldcontext.Case{Args: args, Expected: expected}, nil
}

func parseInt(token string) (int, error) {
	n := 0
	neg := false
	for i, c := range token {
		if i == 0 && c == '-' {
			neg = true
			continue
		}
		if c < '0' || c > '9' {
			return 0, cerrors.Newf(cerrors.ParseError, "%q is not an integer", token)
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}

func loadPattern(patternDir, name string) (bytecode.Pattern, error) {
	path := filepath.Join(patternDir, name+".pattern")
	f, openErr := os.Open(path)
	if openErr != nil {
		return bytecode.Pattern{}, cerrors.Wrap(cerrors.IOError, "opening pattern file "+path, openErr)
	}
	defer f.Close()

	return Pattern(name, f)
}
