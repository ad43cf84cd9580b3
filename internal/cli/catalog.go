package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/chartrie/internal/compiler"
	"github.com/roach88/chartrie/internal/ir"
	"github.com/roach88/chartrie/internal/store"
)

// CatalogOptions holds flags for the catalog command.
type CatalogOptions struct {
	*RootOptions
	DBPath string // database to save automata into
}

// CatalogEntry summarizes one compiled catalog pattern.
type CatalogEntry struct {
	Name        string `json:"name"`
	Pattern     string `json:"pattern"`
	Nodes       int    `json:"nodes"`
	Edges       int    `json:"edges"`
	AcceptCount int    `json:"accept_count"`
	Hash        string `json:"hash"`
	SpecHash    string `json:"spec_hash"`
	ID          string `json:"id,omitempty"`
	Inserted    bool   `json:"inserted,omitempty"`
}

// CatalogResult holds the compiled catalog.
type CatalogResult struct {
	Patterns []CatalogEntry `json:"patterns"`
	Database string         `json:"database,omitempty"`
	Inserted int            `json:"inserted"`
	Existing int            `json:"existing"`
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog <catalog-dir>",
		Short: "Build every pattern in a CUE catalog",
		Long: `Build every pattern of a CUE catalog into an automaton.

Catalog entries live under the top-level "pattern" field:

  pattern: digits: regexp: "[0-9]+"
  pattern: number: {
      regexp:      "-?{digits}(\\.{digits})?"
      description: "signed decimal"
  }

A {name} reference embeds another entry of the same catalog. With --db
the automata are saved to a SQLite database; entries already stored
under the same name are left unchanged.

Exit codes:
  0 - Catalog built
  1 - Catalog has validation errors
  2 - Catalog could not be loaded or saved`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "save automata to this SQLite database")

	return cmd
}

func runCatalog(opts *CatalogOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := formatter.Log()

	loadResult, loadErrors := LoadCatalog(dir, LoadModeCollectAll)
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputCompileError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputCompileError(formatter, ErrCodeGeneric, loadErrors[0].Error(), nil)
	}
	if len(loadErrors) > 0 {
		return outputCompileErrors(formatter, loadErrors)
	}

	logger.Debug("catalog loaded", "dir", dir, "files", loadResult.FileCount)

	catalog := loadResult.Catalog
	ops, err := compiler.Build(catalog)
	if err != nil {
		var verrs compiler.ValidationErrors
		if errors.As(err, &verrs) {
			return outputValidationErrors(formatter, verrs)
		}
		return outputCompileError(formatter, ErrCodeGeneric, err.Error(), nil)
	}

	result := CatalogResult{Patterns: make([]CatalogEntry, 0, len(ops))}
	var records []store.Record
	for _, name := range catalog.Names() {
		spec := catalog.Patterns[name]
		compiled, err := compileOp(spec.Regexp, ops[name], false)
		if err != nil {
			return outputCompileError(formatter, ErrCodeGeneric, fmt.Sprintf("pattern %s: %v", name, err), nil)
		}

		specHash, err := ir.PatternHash(spec)
		if err != nil {
			return outputCompileError(formatter, ErrCodeGeneric, fmt.Sprintf("pattern %s: %v", name, err), nil)
		}

		logger.Debug("pattern built",
			"name", name,
			"nodes", len(compiled.Automaton.Nodes),
			"edges", compiled.Automaton.EdgeCount(),
		)

		result.Patterns = append(result.Patterns, CatalogEntry{
			Name:        name,
			Pattern:     spec.Regexp,
			Nodes:       len(compiled.Automaton.Nodes),
			Edges:       compiled.Automaton.EdgeCount(),
			AcceptCount: compiled.AcceptCount,
			Hash:        compiled.Hash,
			SpecHash:    specHash,
		})
		records = append(records, store.Record{
			Name:       name,
			Pattern:    spec.Regexp,
			IgnoreCase: spec.IgnoreCase,
			Automaton:  compiled.Automaton,
		})
	}

	if opts.DBPath != "" {
		if err := saveRecords(cmd.Context(), opts.DBPath, records, &result, formatter); err != nil {
			return outputCompileError(formatter, ErrCodeStoreFailed, err.Error(), nil)
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ Compiled %d pattern(s)\n\n", len(result.Patterns))
	for _, entry := range result.Patterns {
		fmt.Fprintf(w, "  %s: %d node(s), %d edge(s), %d accepting\n",
			entry.Name, entry.Nodes, entry.Edges, entry.AcceptCount)
	}
	if result.Database != "" {
		fmt.Fprintf(w, "\nSaved %d new, %d unchanged automata to %s\n", result.Inserted, result.Existing, result.Database)
	}
	return nil
}

// saveRecords stores records in the database at path and fills in the
// ids and insert counts on result.
func saveRecords(ctx context.Context, path string, records []store.Record, result *CatalogResult, formatter *OutputFormatter) error {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(path, store.WithLogger(formatter.Log()))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	result.Database = path
	for i, rec := range records {
		saved, inserted, err := st.Save(ctx, rec)
		if err != nil {
			return err
		}
		result.Patterns[i].ID = saved.ID
		result.Patterns[i].Inserted = inserted
		if inserted {
			result.Inserted++
		} else {
			result.Existing++
		}
	}
	return nil
}
