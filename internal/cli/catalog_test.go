package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogBuild(t *testing.T) {
	dir := writeFiles(t, map[string]string{"numbers.cue": numbersCatalog})

	out, err := execute(t, "catalog", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Compiled 2 pattern(s)")
	assert.Contains(t, out, "  digits: 2 node(s), 2 edge(s), 1 accepting")
	assert.Contains(t, out, "  number: ")
	assert.NotContains(t, out, "Saved")
}

func TestCatalogBuildAcrossFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"digits.cue": "package patterns\n\npattern: digits: regexp: \"[0-9]+\"\n",
		"words.cue":  "package patterns\n\npattern: word: {\n\tregexp: \"[a-z]+\"\n\tignore_case: true\n}\n",
	})

	out, err := execute(t, "catalog", dir, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   CatalogResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Patterns, 2)
	assert.Equal(t, "digits", resp.Data.Patterns[0].Name)
	assert.Equal(t, "word", resp.Data.Patterns[1].Name)
	assert.Len(t, resp.Data.Patterns[0].SpecHash, 64)
	assert.NotEqual(t, resp.Data.Patterns[0].SpecHash, resp.Data.Patterns[1].SpecHash)
	assert.Empty(t, resp.Data.Database)
}

func TestCatalogSaveIsIdempotent(t *testing.T) {
	dir := writeFiles(t, map[string]string{"numbers.cue": numbersCatalog})
	db := filepath.Join(t.TempDir(), "patterns.db")

	out, err := execute(t, "catalog", dir, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 2 new, 0 unchanged automata to "+db)

	out, err = execute(t, "catalog", dir, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 0 new, 2 unchanged automata to "+db)
}

func TestCatalogValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    string
	}{
		{
			name:    "unknown reference",
			content: "package patterns\n\npattern: a: regexp: \"{b}+\"\n",
			code:    "E110",
		},
		{
			name:    "cycle",
			content: "package patterns\n\npattern: a: regexp: \"x{b}\"\npattern: b: regexp: \"y{a}\"\n",
			code:    "E111",
		},
		{
			name:    "syntax",
			content: "package patterns\n\npattern: a: regexp: \"(ab\"\n",
			code:    "E103",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, map[string]string{"bad.cue": tt.content})

			out, err := execute(t, "catalog", dir)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, out, "✗ Validation failed")
			assert.Contains(t, out, tt.code)
		})
	}
}

func TestCatalogLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		code    string
		message string
	}{
		{
			name:    "missing regexp",
			files:   map[string]string{"a.cue": "package patterns\n\npattern: a: description: \"no regexp\"\n"},
			code:    "E102",
			message: "pattern.a: regexp is required",
		},
		{
			name:    "no patterns",
			files:   map[string]string{"a.cue": "package patterns\n\nother: 1\n"},
			code:    "E112",
			message: "no patterns found in catalog",
		},
		{
			name:    "no cue files",
			files:   map[string]string{"readme.txt": "nothing here"},
			code:    ErrCodeNoFiles,
			message: "no CUE files found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, tt.files)

			out, err := execute(t, "catalog", dir)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, tt.code)
			assert.Contains(t, out, tt.message)
		})
	}
}

func TestCatalogMissingDir(t *testing.T) {
	out, err := execute(t, "catalog", filepath.Join(t.TempDir(), "nope"), "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestLoadCatalog(t *testing.T) {
	dir := writeFiles(t, map[string]string{"numbers.cue": numbersCatalog})

	result, errs := LoadCatalog(dir, LoadModeCollectAll)
	require.Empty(t, errs)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.FileCount)
	assert.Equal(t, []string{"digits", "number"}, result.Catalog.Names())
	assert.Equal(t, []string{"digits"}, result.Catalog.Patterns["number"].References)
	assert.Equal(t, "signed decimal", result.Catalog.Patterns["number"].Description)
}

func TestLoadCatalogCollectAll(t *testing.T) {
	dir := writeFiles(t, map[string]string{"bad.cue": `package patterns

pattern: a: description: "x"
pattern: b: description: "y"
pattern: c: regexp: "c"
`})

	result, errs := LoadCatalog(dir, LoadModeCollectAll)
	require.NotNil(t, result)
	assert.Len(t, errs, 2)
	assert.Equal(t, []string{"c"}, result.Catalog.Names())

	_, errs = LoadCatalog(dir, LoadModeFailFast)
	assert.Len(t, errs, 1)
}
