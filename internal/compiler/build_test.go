package compiler

import (
	"errors"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/chartrie/internal/testutil"
	"github.com/roach88/chartrie/internal/trie"
)

func TestBuildResolvesReferences(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		pattern: digits: regexp: "[0-9]+"
		pattern: number: regexp: "-?{digits}(\\.{digits})?"
	`)
	require.NoError(t, v.Err())

	catalog, err := CompileCatalog(v)
	require.NoError(t, err)

	ops, err := Build(catalog)
	require.NoError(t, err)
	require.Len(t, ops, 2)

	number := ops["number"]
	assert.Equal(t, `-?{digits}(\.{digits})?`, number.String())

	a := trie.Compile(number)
	for _, in := range []string{"1", "-12", "3.14", "-0.5"} {
		assert.True(t, testutil.Accepts(a.Graph, a.Start, in), "should accept %q", in)
	}
	for _, in := range []string{"", "-", "1.", ".5"} {
		assert.False(t, testutil.Accepts(a.Graph, a.Start, in), "should reject %q", in)
	}
}

func TestBuildIgnoreCase(t *testing.T) {
	c := catalogOf(spec("kw", "select"))
	kw := c.Patterns["kw"]
	kw.IgnoreCase = true
	c.Patterns["kw"] = kw

	ops, err := Build(c)
	require.NoError(t, err)
	a := trie.Compile(ops["kw"])
	assert.True(t, testutil.Accepts(a.Graph, a.Start, "SeLeCt"))
}

func TestBuildRejectsInvalidCatalog(t *testing.T) {
	_, err := Build(catalogOf(spec("a", "{b}"), spec("b", "{a}")))
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, ErrReferenceCycle, verrs[0].Code)
}
