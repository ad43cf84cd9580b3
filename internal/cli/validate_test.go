package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValidCatalog(t *testing.T) {
	dir := writeFiles(t, map[string]string{"numbers.cue": numbersCatalog})

	out, err := execute(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ All 2 pattern(s) valid")
}

func TestValidateSyntaxError(t *testing.T) {
	dir := writeFiles(t, map[string]string{"bad.cue": "package patterns\n\npattern: a: regexp: \"a|\"\n"})

	out, err := execute(t, "validate", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "pattern.a.regexp")
	assert.Contains(t, out, "E103: dangling | at offset 2")
}

func TestValidateJSON(t *testing.T) {
	dir := writeFiles(t, map[string]string{"bad.cue": "package patterns\n\npattern: \"9x\": regexp: \"a\"\n"})

	out, err := execute(t, "validate", dir, "--format", "json")
	require.Error(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Errors, 1)
	assert.Equal(t, "E101", resp.Data.Errors[0].Code)
	assert.Equal(t, "E101", resp.Error.Code)
}

func TestValidateMissingDir(t *testing.T) {
	out, err := execute(t, "validate", "/nonexistent/catalog")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "catalog directory not found")
}
