package compiler

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilePatternBasic(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		pattern: number: {
			regexp:      "-?{digits}(\\.{digits})?"
			description: "signed decimal"
			ignore_case: true
		}
	`)
	require.NoError(t, v.Err())

	spec, err := CompilePattern(v.LookupPath(cue.ParsePath("pattern.number")))
	require.NoError(t, err)

	assert.Equal(t, "number", spec.Name)
	assert.Equal(t, `-?{digits}(\.{digits})?`, spec.Regexp)
	assert.Equal(t, "signed decimal", spec.Description)
	assert.True(t, spec.IgnoreCase)
	assert.Equal(t, []string{"digits"}, spec.References)
}

func TestCompilePatternMissingRegexp(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		pattern: bad: {
			description: "no regexp"
		}
	`)
	require.NoError(t, v.Err())

	_, err := CompilePattern(v.LookupPath(cue.ParsePath("pattern.bad")))
	require.Error(t, err)
	assert.True(t, IsCompileError(err))
	assert.Contains(t, err.Error(), "regexp is required")
}

func TestCompilePatternWrongType(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`pattern: bad: regexp: 42`)
	require.NoError(t, v.Err())

	_, err := CompilePattern(v.LookupPath(cue.ParsePath("pattern.bad")))
	assert.Error(t, err)
}

func TestCompilePatternKeepsUnparsableRegexp(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`pattern: broken: regexp: "a|"`)
	require.NoError(t, v.Err())

	spec, err := CompilePattern(v.LookupPath(cue.ParsePath("pattern.broken")))
	require.NoError(t, err)
	assert.Equal(t, "a|", spec.Regexp)
	assert.Empty(t, spec.References)

	errs := Validate(spec)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrPatternSyntax, errs[0].Code)
	assert.Equal(t, 2, errs[0].Offset)
}

func TestCompileCatalog(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		pattern: digits: regexp: "[0-9]+"
		pattern: word: {
			regexp:      "[a-z]+"
			ignore_case: true
		}
	`)
	require.NoError(t, v.Err())

	catalog, err := CompileCatalog(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"digits", "word"}, catalog.Names())
	assert.True(t, catalog.Patterns["word"].IgnoreCase)
	assert.False(t, catalog.Patterns["digits"].IgnoreCase)
}

func TestCompileCatalogWithoutPatterns(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`other: 1`)
	require.NoError(t, v.Err())

	catalog, err := CompileCatalog(v)
	require.NoError(t, err)
	assert.Empty(t, catalog.Patterns)
}

func TestCompileCatalogReportsEntry(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`pattern: empty: {}`)
	require.NoError(t, v.Err())

	_, err := CompileCatalog(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pattern empty")
}

func TestReferences(t *testing.T) {
	refs, err := References("{a}{b}|{a}+")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, refs)

	refs, err = References(`\{a\}`)
	require.NoError(t, err)
	assert.Empty(t, refs)

	_, err = References("{a")
	assert.Error(t, err)
}
