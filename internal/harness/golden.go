package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Golden renders the result in the golden file format: a header with the
// pattern and accept count, then the formatter lines. Parse failures render
// as a single error line.
func (r *Result) Golden(s *Scenario) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "pattern: %s\n", s.Pattern)
	if s.IgnoreCase {
		b.WriteString("ignore_case: true\n")
	}
	if r.ParseError != nil {
		fmt.Fprintf(&b, "error: offset %d: %s\n", r.ParseError.Offset, r.ParseError.Message)
		return []byte(b.String())
	}
	fmt.Fprintf(&b, "accept_count: %d\n", r.AcceptCount)
	for _, line := range r.Lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// RunWithGolden executes a scenario and compares its rendering against a
// golden file. The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the rendering doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario, result)
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, result.Golden(scenario))
}
