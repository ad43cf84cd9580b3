package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Pattern is the regexp compiled by the scenario.
	Pattern string `yaml:"pattern"`

	// IgnoreCase parses the pattern case-insensitively.
	IgnoreCase bool `yaml:"ignore_case,omitempty"`

	// Terminal renders terminal nodes as "(id)" in Lines.
	Terminal bool `yaml:"terminal,omitempty"`

	// Expect holds the checks applied to the compiled automaton.
	Expect Expect `yaml:"expect"`
}

// Expect specifies what a scenario checks. Unset fields are not checked.
type Expect struct {
	// Lines is the exact formatter output.
	Lines []string `yaml:"lines,omitempty"`

	// AcceptCount is the expected end frontier size.
	AcceptCount *int `yaml:"accept_count,omitempty"`

	// ErrorOffset is the rune offset of the expected parse error.
	ErrorOffset *int `yaml:"error_offset,omitempty"`

	// Error is the expected parse error message. Requires ErrorOffset.
	Error string `yaml:"error,omitempty"`

	// Accepts lists inputs the automaton must accept in full.
	Accepts []string `yaml:"accepts,omitempty"`

	// Rejects lists inputs the automaton must not accept in full.
	Rejects []string `yaml:"rejects,omitempty"`

	// Matches lists inputs with the expected longest accepted prefix.
	Matches []Match `yaml:"matches,omitempty"`
}

// Match is one longest-prefix check. Length -1 means no prefix matches.
type Match struct {
	Input  string `yaml:"input"`
	Length int    `yaml:"length"`
}

// expectsError reports whether the scenario expects a parse error.
func (e Expect) expectsError() bool {
	return e.ErrorOffset != nil
}

// expectsAutomaton reports whether any automaton check is set.
func (e Expect) expectsAutomaton() bool {
	return e.Lines != nil || e.AcceptCount != nil ||
		len(e.Accepts) > 0 || len(e.Rejects) > 0 || len(e.Matches) > 0
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "line:" vs "lines:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarios returns the .yaml and .yml files under dir in lexical
// order. A non-empty filter is a filepath.Match glob applied to the file
// name without its extension.
func FindScenarios(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Pattern == "" && !s.Expect.expectsError() {
		return fmt.Errorf("pattern is required")
	}

	e := s.Expect
	if !e.expectsError() && !e.expectsAutomaton() {
		return fmt.Errorf("expect must contain at least one check")
	}

	if e.expectsError() {
		if e.expectsAutomaton() {
			return fmt.Errorf("expect: error_offset cannot be combined with automaton checks")
		}
		if *e.ErrorOffset < 0 {
			return fmt.Errorf("expect: error_offset must be non-negative")
		}
	}

	if e.Error != "" && !e.expectsError() {
		return fmt.Errorf("expect: error requires error_offset")
	}

	if e.AcceptCount != nil && *e.AcceptCount < 0 {
		return fmt.Errorf("expect: accept_count must be non-negative")
	}

	for i, m := range e.Matches {
		if m.Length < -1 {
			return fmt.Errorf("expect.matches[%d]: length must be -1 or greater", i)
		}
	}

	return nil
}
