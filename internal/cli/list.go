package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	DBPath string // database to read from
}

// ListEntry is one stored automaton in list output.
type ListEntry struct {
	Seq     int64  `json:"seq"`
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
	Nodes   int    `json:"nodes"`
	Hash    string `json:"hash"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored automata",
		Long: `List the automata saved in a database, oldest first.

Examples:
  chartrie list --db patterns.db
  chartrie list --db patterns.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "SQLite database path (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
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

	records, err := st.List(ctx)
	if err != nil {
		return outputCompileError(formatter, ErrCodeStoreFailed, err.Error(), nil)
	}

	entries := make([]ListEntry, len(records))
	for i, rec := range records {
		entries[i] = ListEntry{
			Seq:     rec.Seq,
			Name:    rec.Name,
			Pattern: rec.Pattern,
			Nodes:   len(rec.Automaton.Nodes),
			Hash:    rec.Hash,
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "No automata stored.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%4d  %-16s %s  %s\n", e.Seq, e.Name, e.Hash[:12], e.Pattern)
	}
	return nil
}
