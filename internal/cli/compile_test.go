package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/chartrie/internal/format"
	"github.com/roach88/chartrie/internal/ir"
)

func TestCompileText(t *testing.T) {
	out, err := execute(t, "compile", "[0-9]+")
	require.NoError(t, err)
	assert.Equal(t, "1 -[0-9]-> 2\n2 -[0-9]-> 2\n", out)
}

func TestCompileTerminal(t *testing.T) {
	out, err := execute(t, "compile", "ab|cd", "--terminal")
	require.NoError(t, err)
	assert.Equal(t, "1 -a-> 2\n  -c-> 3\n2 -b-> (4)\n3 -d-> (5)\n", out)
}

func TestCompileIgnoreCase(t *testing.T) {
	out, err := execute(t, "compile", "a", "-i")
	require.NoError(t, err)
	assert.Equal(t, "1 -[Aa]-> 2\n", out)
}

func TestCompileJSON(t *testing.T) {
	out, err := execute(t, "compile", "a*", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string            `json:"status"`
		Data   CompilationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "a*", resp.Data.Pattern)
	assert.Equal(t, []string{"1 -a-> 1"}, resp.Data.Lines)
	assert.Equal(t, 1, resp.Data.AcceptCount)
	assert.Len(t, resp.Data.Hash, 64)
	require.NotNil(t, resp.Data.Automaton)
	assert.Equal(t, []int{1}, resp.Data.Automaton.Terminals())
}

func TestCompileParseErrorText(t *testing.T) {
	out, err := execute(t, "compile", "ab|")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	assert.Contains(t, out, "✗ Pattern did not parse")
	assert.Contains(t, out, "  ab|\n     ^\n")
	assert.Contains(t, out, "E103: dangling | at offset 3")
}

func TestCompileParseErrorJSON(t *testing.T) {
	out, err := execute(t, "compile", "[z-a]", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E103", resp.Error.Code)
	assert.Equal(t, "invalid range", resp.Error.Message)
	assert.Equal(t, map[string]any{"pattern": "[z-a]", "offset": float64(1)}, resp.Error.Details)
}

func TestCompileOutputToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "colour.json")

	out, err := execute(t, "compile", "colou?r", "--output", outputFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote snapshot to "+outputFile)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var a ir.Automaton
	require.NoError(t, json.Unmarshal(data, &a))
	assert.Equal(t, "colou?r", a.Pattern)
	assert.Equal(t, []int{7, 8}, a.Terminals())

	g, start, err := a.Restore()
	require.NoError(t, err)
	assert.Len(t, format.Format(g, start), 7)
}

func TestCompileOutputWriteFailure(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "missing", "out.json")

	_, err := execute(t, "compile", "a", "--output", outputFile)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeWriteFailed)
}

func TestCompileMissingArgs(t *testing.T) {
	_, err := execute(t, "compile")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}
