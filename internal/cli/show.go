package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/chartrie/internal/format"
	"github.com/roach88/chartrie/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	DBPath   string // database to read from
	Terminal bool   // render terminal nodes as (id)
}

// ShowResult is one stored automaton rendered for output.
type ShowResult struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Pattern    string   `json:"pattern"`
	IgnoreCase bool     `json:"ignore_case,omitempty"`
	Hash       string   `json:"hash"`
	Seq        int64    `json:"seq"`
	Terminals  []int    `json:"terminals"`
	Lines      []string `json:"lines"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a stored automaton",
		Long: `Load an automaton saved by "chartrie catalog --db" and print it in the
formatter's line format.

Exit codes:
  0 - Automaton printed
  2 - Database or automaton not found

Examples:
  chartrie show number --db patterns.db
  chartrie show number --db patterns.db --terminal --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "SQLite database path (required)")
	cmd.Flags().BoolVarP(&opts.Terminal, "terminal", "t", false, "render terminal nodes as (id)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runShow(opts *ShowOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openExistingStore(opts.DBPath, formatter)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rec, err := st.Get(ctx, name)
	if store.IsNotFound(err) {
		return outputCompileError(formatter, ErrCodeNotFound, fmt.Sprintf("automaton not found: %s", name), nil)
	}
	if err != nil {
		return outputCompileError(formatter, ErrCodeStoreFailed, err.Error(), nil)
	}

	g, start, err := rec.Automaton.Restore()
	if err != nil {
		return outputCompileError(formatter, ErrCodeStoreFailed, fmt.Sprintf("automaton %s: %v", name, err), nil)
	}

	f := format.Formatter{}
	if opts.Terminal {
		f.Label = format.TerminalLabel
	}

	result := ShowResult{
		ID:         rec.ID,
		Name:       rec.Name,
		Pattern:    rec.Pattern,
		IgnoreCase: rec.IgnoreCase,
		Hash:       rec.Hash,
		Seq:        rec.Seq,
		Terminals:  rec.Automaton.Terminals(),
		Lines:      f.Format(g, start),
	}

	formatter.Log().Debug("automaton loaded", "name", name, "id", rec.ID, "seq", rec.Seq)

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	formatter.Lines(result.Lines)
	return nil
}

// openExistingStore opens the database at path without creating it.
func openExistingStore(path string, formatter *OutputFormatter) (*store.Store, error) {
	if path == "" {
		return nil, outputCompileError(formatter, ErrCodeNotFound, "--db is required", nil)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, outputCompileError(formatter, ErrCodeNotFound, fmt.Sprintf("database not found: %s", path), nil)
	}

	st, err := store.Open(path, store.WithLogger(formatter.Log()))
	if err != nil {
		return nil, outputCompileError(formatter, ErrCodeStoreFailed, fmt.Sprintf("opening database: %v", err), nil)
	}
	return st, nil
}
