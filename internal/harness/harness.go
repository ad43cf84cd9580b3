package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/chartrie/internal/format"
	"github.com/roach88/chartrie/internal/ir"
	"github.com/roach88/chartrie/internal/pattern"
	"github.com/roach88/chartrie/internal/store"
	"github.com/roach88/chartrie/internal/testutil"
	"github.com/roach88/chartrie/internal/trie"
)

// Harness is the test execution engine.
type Harness struct {
	store  *store.Store
	logger *slog.Logger
}

// Option configures a scenario run.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for per-step output. Runs are silent by
// default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Deterministic ids keep stored records reproducible.
//
// Execution flow:
// 1. Parse the pattern and check any expected parse error
// 2. Compile the op and render it with the formatter
// 3. Save the snapshot, load it back and compare the rendering
// 4. Check lines, accept count, accepted and rejected inputs
//
// Expectation mismatches are reported in Result.Errors. The returned error
// is reserved for failures of the harness itself.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	st, err := store.Open(":memory:",
		store.WithIDGenerator(testutil.NewFixedIDGenerator("harness")),
		store.WithLogger(o.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{store: st, logger: o.logger}
	return h.run(context.Background(), scenario)
}

func (h *Harness) run(ctx context.Context, s *Scenario) (*Result, error) {
	result := NewResult()

	var parseOpts []pattern.Option
	if s.IgnoreCase {
		parseOpts = append(parseOpts, pattern.WithIgnoreCase())
	}
	op, err := pattern.Parse(s.Pattern, parseOpts...)
	if err != nil {
		var pe *pattern.ParseError
		if !errors.As(err, &pe) {
			return nil, fmt.Errorf("parse %q: %w", s.Pattern, err)
		}
		result.ParseError = &ParseFailure{Offset: pe.Offset, Message: pe.Message}
		h.checkParseError(s, result)
		return result, nil
	}
	if s.Expect.expectsError() {
		result.AddError(fmt.Sprintf("expected parse error at offset %d, pattern parsed", *s.Expect.ErrorOffset))
		return result, nil
	}

	a := trie.Compile(op)
	formatter := format.Formatter{}
	if s.Terminal {
		formatter.Label = format.TerminalLabel
	}
	result.Lines = formatter.Format(a.Graph, a.Start)
	result.AcceptCount = a.Accept.Len()

	h.logger.Info("pattern compiled",
		"scenario", s.Name,
		"pattern", s.Pattern,
		"lines", len(result.Lines),
		"accept_count", result.AcceptCount,
	)

	if err := h.roundTrip(ctx, s, a, formatter, result); err != nil {
		return nil, err
	}

	h.checkAutomaton(s, a, result)
	return result, nil
}

// roundTrip saves the snapshot, reads it back and checks that the restored
// graph renders identically.
func (h *Harness) roundTrip(ctx context.Context, s *Scenario, a *trie.Automaton, formatter format.Formatter, result *Result) error {
	snap := ir.Snapshot(a.Graph, a.Start)
	snap.Pattern = s.Pattern

	rec, _, err := h.store.Save(ctx, store.Record{
		Name:       s.Name,
		Pattern:    s.Pattern,
		IgnoreCase: s.IgnoreCase,
		Automaton:  snap,
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	result.Hash = rec.Hash

	loaded, err := h.store.Get(ctx, s.Name)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	g, start, err := loaded.Automaton.Restore()
	if err != nil {
		result.AddError(fmt.Sprintf("snapshot does not restore: %v", err))
		return nil
	}

	if restored := formatter.Format(g, start); !slices.Equal(restored, result.Lines) {
		result.AddError(fmt.Sprintf("restored snapshot renders differently: got %q, want %q", restored, result.Lines))
	}

	h.logger.Info("snapshot round trip",
		"scenario", s.Name,
		"id", rec.ID,
		"hash", rec.Hash,
	)
	return nil
}

func (h *Harness) checkParseError(s *Scenario, result *Result) {
	pf := result.ParseError
	e := s.Expect
	if !e.expectsError() {
		result.AddError(fmt.Sprintf("unexpected parse error at offset %d: %s", pf.Offset, pf.Message))
		return
	}
	if pf.Offset != *e.ErrorOffset {
		result.AddError(fmt.Sprintf("parse error offset: got %d, want %d", pf.Offset, *e.ErrorOffset))
	}
	if e.Error != "" && pf.Message != e.Error {
		result.AddError(fmt.Sprintf("parse error message: got %q, want %q", pf.Message, e.Error))
	}

	h.logger.Info("parse error checked",
		"scenario", s.Name,
		"offset", pf.Offset,
		"message", pf.Message,
	)
}

func (h *Harness) checkAutomaton(s *Scenario, a *trie.Automaton, result *Result) {
	e := s.Expect

	if e.Lines != nil {
		checkLines(e.Lines, result)
	}

	if e.AcceptCount != nil && result.AcceptCount != *e.AcceptCount {
		result.AddError(fmt.Sprintf("accept count: got %d, want %d", result.AcceptCount, *e.AcceptCount))
	}

	for _, in := range e.Accepts {
		if !testutil.Accepts(a.Graph, a.Start, in) {
			result.AddError(fmt.Sprintf("expected %q to be accepted", in))
		}
	}
	for _, in := range e.Rejects {
		if testutil.Accepts(a.Graph, a.Start, in) {
			result.AddError(fmt.Sprintf("expected %q to be rejected", in))
		}
	}

	for _, m := range e.Matches {
		n, ok := testutil.LongestMatch(a.Graph, a.Start, m.Input)
		if !ok {
			n = -1
		}
		if n != m.Length {
			result.AddError(fmt.Sprintf("longest match of %q: got %d, want %d", m.Input, n, m.Length))
		}
	}

	h.logger.Info("scenario checked",
		"scenario", s.Name,
		"pass", result.Pass,
		"errors", len(result.Errors),
	)
}

// checkLines reports the first differing line and any length mismatch.
func checkLines(want []string, result *Result) {
	got := result.Lines
	for i := 0; i < min(len(got), len(want)); i++ {
		if got[i] != want[i] {
			result.AddError(fmt.Sprintf("line %d: got %q, want %q", i+1, got[i], want[i]))
			return
		}
	}
	if len(got) != len(want) {
		result.AddError(fmt.Sprintf("line count: got %d, want %d", len(got), len(want)))
	}
}
