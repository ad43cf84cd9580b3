package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/chartrie/internal/compiler"
	"github.com/roach88/chartrie/internal/format"
	"github.com/roach88/chartrie/internal/ir"
	"github.com/roach88/chartrie/internal/pattern"
	"github.com/roach88/chartrie/internal/trie"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	IgnoreCase bool   // parse case-insensitively
	Terminal   bool   // render terminal nodes as (id)
	Output     string // snapshot output file path
}

// CompilationResult is the compiled form of one pattern.
type CompilationResult struct {
	Pattern     string        `json:"pattern"`
	Lines       []string      `json:"lines"`
	AcceptCount int           `json:"accept_count"`
	Hash        string        `json:"hash"`
	Automaton   *ir.Automaton `json:"automaton"`
}

// ParseErrorDetails is the JSON detail payload for a rejected pattern.
type ParseErrorDetails struct {
	Pattern string `json:"pattern"`
	Offset  int    `json:"offset"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <pattern>",
		Short: "Compile a pattern and print its automaton",
		Long: `Compile a regular expression into a character automaton and print it
in the formatter's line format.

Each line lists one node and its outgoing edges grouped by destination:

  1 -a|b-> 2

Exit codes:
  0 - Pattern compiled
  2 - Pattern did not parse

Examples:
  chartrie compile '[0-9]+'
  chartrie compile 'select' --ignore-case
  chartrie compile '(ab)*c' --terminal --format json
  chartrie compile 'colou?r' --output colour.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.IgnoreCase, "ignore-case", "i", false, "match letters case-insensitively")
	cmd.Flags().BoolVarP(&opts.Terminal, "terminal", "t", false, "render terminal nodes as (id)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the snapshot JSON to this file")

	return cmd
}

func runCompile(opts *CompileOptions, expr string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	var parseOpts []pattern.Option
	if opts.IgnoreCase {
		parseOpts = append(parseOpts, pattern.WithIgnoreCase())
	}
	op, err := pattern.Parse(expr, parseOpts...)
	if err != nil {
		return outputParseError(formatter, expr, err)
	}

	result, err := compileOp(expr, op, opts.Terminal)
	if err != nil {
		return outputCompileError(formatter, ErrCodeGeneric, err.Error(), nil)
	}

	formatter.Log().Debug("pattern compiled",
		"pattern", expr,
		"nodes", len(result.Automaton.Nodes),
		"edges", result.Automaton.EdgeCount(),
		"accept_count", result.AcceptCount,
		"hash", result.Hash,
	)

	if opts.Output != "" {
		if err := writeSnapshotToFile(result.Automaton, opts.Output); err != nil {
			return outputCompileError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	formatter.Lines(result.Lines)
	if opts.Output != "" {
		fmt.Fprintf(formatter.Writer, "Wrote snapshot to %s\n", opts.Output)
	}
	return nil
}

// compileOp compiles op and captures its rendering and snapshot.
func compileOp(expr string, op *trie.Op, terminal bool) (*CompilationResult, error) {
	a := trie.Compile(op)

	f := format.Formatter{}
	if terminal {
		f.Label = format.TerminalLabel
	}

	snap := ir.Snapshot(a.Graph, a.Start)
	snap.Pattern = expr
	hash, err := ir.AutomatonHash(snap)
	if err != nil {
		return nil, err
	}

	return &CompilationResult{
		Pattern:     expr,
		Lines:       f.Format(a.Graph, a.Start),
		AcceptCount: a.Accept.Len(),
		Hash:        hash,
		Automaton:   snap,
	}, nil
}

// outputParseError reports a rejected pattern with its offset.
func outputParseError(formatter *OutputFormatter, expr string, err error) error {
	var pe *pattern.ParseError
	if !errors.As(err, &pe) {
		return outputCompileError(formatter, ErrCodeGeneric, err.Error(), nil)
	}

	if formatter.Format == "json" {
		_ = formatter.Error(compiler.ErrPatternSyntax, pe.Message, ParseErrorDetails{Pattern: expr, Offset: pe.Offset})
	} else {
		fmt.Fprintln(formatter.Writer, "✗ Pattern did not parse")
		fmt.Fprintln(formatter.Writer)
		fmt.Fprintf(formatter.Writer, "  %s\n", expr)
		fmt.Fprintf(formatter.Writer, "  %s^\n", strings.Repeat(" ", pe.Offset))
		fmt.Fprintf(formatter.Writer, "  %s: %s at offset %d\n", compiler.ErrPatternSyntax, pe.Message, pe.Offset)
	}
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", compiler.ErrPatternSyntax, pe.Message), err)
}

// outputCompileError outputs a single compilation error.
func outputCompileError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	// Compilation errors are command-level errors (exit code 2)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}

// outputCompileErrors outputs multiple load or compilation errors.
func outputCompileErrors(formatter *OutputFormatter, errs []error) error {
	if formatter.Format == "json" {
		cliErrors := make([]CLIError, len(errs))
		for i, err := range errs {
			code, message := parseCompileError(err)
			cliErrors[i] = CLIError{
				Code:    code,
				Message: message,
			}
		}

		response := CLIResponse{
			Status: "error",
			Error:  &cliErrors[0],
			Data:   cliErrors, // Include all errors in data
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Compilation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		code, message := parseCompileError(err)
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Pos.IsValid() {
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n",
				loadErr.Pos.Filename(),
				loadErr.Pos.Line(),
				loadErr.Pos.Column())
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", code, message)
	}

	return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
}

// parseCompileError extracts error code and message from an error.
func parseCompileError(err error) (string, string) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return MapFieldToErrorCode(compileErr.Field), compileErr.Message
	}
	return ErrCodeGeneric, err.Error()
}

// writeSnapshotToFile writes a snapshot as indented JSON.
// (canonical JSON without indentation is used only for hashing)
func writeSnapshotToFile(a *ir.Automaton, filename string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
