package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCycles_DAG(t *testing.T) {
	c := catalogOf(
		spec("digit", "[0-9]"),
		spec("digits", "{digit}+"),
		spec("number", "{digits}(\\.{digits})?"),
	)
	assert.Empty(t, AnalyzeCycles(c))
}

func TestAnalyzeCycles_SelfLoop(t *testing.T) {
	cycles := AnalyzeCycles(catalogOf(spec("list", "x({list})?")))
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"list", "list"}, cycles[0].Path)
	assert.Contains(t, cycles[0].Message, "references itself")
}

func TestAnalyzeCycles_ThreeNodes(t *testing.T) {
	cycles := AnalyzeCycles(catalogOf(
		spec("a", "{b}"),
		spec("b", "{c}"),
		spec("c", "{a}"),
		spec("d", "{a}"),
	))
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a", "b", "c", "a"}, cycles[0].Path)
	assert.Equal(t, "reference cycle: a -> b -> c -> a", cycles[0].Message)
}

func TestAnalyzeCycles_IgnoresUnknownReferences(t *testing.T) {
	assert.Empty(t, AnalyzeCycles(catalogOf(spec("a", "{missing}"))))
}

func TestBuildOrder_DependenciesFirst(t *testing.T) {
	c := catalogOf(
		spec("number", "{sign}?{digits}"),
		spec("digits", "{digit}+"),
		spec("digit", "[0-9]"),
		spec("sign", "[+-]"),
		spec("word", "[a-z]+"),
	)

	order, err := BuildOrder(c)
	require.NoError(t, err)
	require.Len(t, order, 5)

	pos := make(map[string]int)
	for i, name := range order {
		pos[name] = i
	}
	assert.Less(t, pos["digit"], pos["digits"])
	assert.Less(t, pos["digits"], pos["number"])
	assert.Less(t, pos["sign"], pos["number"])
}

func TestBuildOrder_Deterministic(t *testing.T) {
	c := catalogOf(spec("b", "x"), spec("a", "y"), spec("c", "{a}{b}"))
	first, err := BuildOrder(c)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := BuildOrder(c)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, []string{"a", "b", "c"}, first)
}

func TestBuildOrder_Cycle(t *testing.T) {
	_, err := BuildOrder(catalogOf(spec("a", "{b}"), spec("b", "{a}")))
	assert.ErrorContains(t, err, "reference cycle")
}
