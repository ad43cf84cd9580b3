package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, `
name: digits
description: "digits"
pattern: "[0-9]+"
ignore_case: true
terminal: true
expect:
  lines: ["1 -[0-9]-> (2)", "(2) -[0-9]-> (2)"]
  accept_count: 1
  accepts: ["1"]
  rejects: ["a"]
  matches:
    - input: "12x"
      length: 2
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "digits", s.Name)
	assert.Equal(t, "[0-9]+", s.Pattern)
	assert.True(t, s.IgnoreCase)
	assert.True(t, s.Terminal)
	assert.Len(t, s.Expect.Lines, 2)
	require.NotNil(t, s.Expect.AcceptCount)
	assert.Equal(t, 1, *s.Expect.AcceptCount)
	assert.Equal(t, []Match{{Input: "12x", Length: 2}}, s.Expect.Matches)
	assert.Nil(t, s.Expect.ErrorOffset)
}

func TestLoadScenario_ErrorScenario(t *testing.T) {
	path := writeScenario(t, `
name: empty
description: "the empty pattern is rejected"
pattern: ""
expect:
  error_offset: 0
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)
	require.NotNil(t, s.Expect.ErrorOffset)
	assert.Equal(t, 0, *s.Expect.ErrorOffset)
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "unknown field",
			content: "name: x\ndescription: d\npattern: a\nexpect:\n  line: [\"1\"]\n",
			want:    "failed to parse YAML",
		},
		{
			name:    "missing name",
			content: "description: d\npattern: a\nexpect:\n  accept_count: 1\n",
			want:    "name is required",
		},
		{
			name:    "missing description",
			content: "name: x\npattern: a\nexpect:\n  accept_count: 1\n",
			want:    "description is required",
		},
		{
			name:    "missing pattern",
			content: "name: x\ndescription: d\nexpect:\n  accept_count: 1\n",
			want:    "pattern is required",
		},
		{
			name:    "no checks",
			content: "name: x\ndescription: d\npattern: a\n",
			want:    "expect must contain at least one check",
		},
		{
			name:    "error with lines",
			content: "name: x\ndescription: d\npattern: a\nexpect:\n  error_offset: 0\n  lines: [\"1\"]\n",
			want:    "cannot be combined",
		},
		{
			name:    "message without offset",
			content: "name: x\ndescription: d\npattern: a\nexpect:\n  error: boom\n  accept_count: 1\n",
			want:    "error requires error_offset",
		},
		{
			name:    "negative accept count",
			content: "name: x\ndescription: d\npattern: a\nexpect:\n  accept_count: -1\n",
			want:    "accept_count must be non-negative",
		},
		{
			name:    "bad match length",
			content: "name: x\ndescription: d\npattern: a\nexpect:\n  matches:\n    - input: a\n      length: -2\n",
			want:    "expect.matches[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read scenario file")
}

func TestFindScenarios(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yml", "c.txt", "sub/d.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	files, err := FindScenarios(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yml"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "sub", "d.yaml"),
	}, files)

	files, err = FindScenarios(dir, "[ab]")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	_, err = FindScenarios(dir, "[")
	assert.ErrorContains(t, err, "invalid filter pattern")
}
