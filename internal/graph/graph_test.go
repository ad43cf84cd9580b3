package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/chartrie/internal/predicate"
)

var (
	pa = predicate.Char('a')
	pb = predicate.Char('b')
	pc = predicate.Char('c')
)

func TestNewNodeIdentity(t *testing.T) {
	g := New()
	n1 := g.NewNode()
	n2 := g.NewNode()
	assert.NotEqual(t, n1, n2, "fresh nodes are distinct")
	assert.False(t, g.HasOutEdges(n1))
	assert.False(t, g.IsTerminal(n1))
	assert.Equal(t, 2, g.Len())
}

func TestAppendCreatesNode(t *testing.T) {
	g := New()
	start := g.NewNode()

	f := g.Append(start, pa)
	require.Equal(t, 1, f.Len())
	end := f.IDs()[0]

	assert.NotEqual(t, start, end)
	assert.True(t, g.HasOutEdges(start))
	assert.Equal(t, []NodeID{end}, g.Fetch(start, pa))
	assert.Equal(t, []NodeID{end}, g.FetchChar(start, 'a'))
	assert.Empty(t, g.Fetch(start, pb))
}

func TestConnectExistingNode(t *testing.T) {
	g := New()
	start := g.NewNode()
	n1 := g.NewNode()

	g.Connect(start, pa, n1)
	g.Connect(start, pb, n1)

	assert.Equal(t, 2, g.Len(), "connect never allocates")
	assert.Equal(t, []NodeID{n1}, g.Fetch(start, pa))
	assert.Equal(t, []NodeID{n1}, g.Fetch(start, pb))
	assert.Equal(t, []predicate.Predicate{pa, pb}, g.Predicates(start))
}

func TestReplaceParallelEdges(t *testing.T) {
	g := New()
	src := g.NewNode()
	old := g.NewNode()
	other := g.NewNode()
	repl := g.NewNode()

	g.Connect(src, pa, old)
	g.Connect(src, pa, old)
	g.Connect(src, pb, old)
	g.Connect(src, pa, other)

	n := g.Replace(src, pa, old, repl)
	assert.Equal(t, 2, n)
	assert.Equal(t, []NodeID{repl, repl, other}, g.Fetch(src, pa))
	assert.Equal(t, []NodeID{old}, g.Fetch(src, pb), "other labels untouched")
}

func TestReplaceNoMatch(t *testing.T) {
	g := New()
	src := g.NewNode()
	dst := g.NewNode()
	g.Connect(src, pa, dst)
	before := g.Edges(src)

	assert.Equal(t, 0, g.Replace(src, pb, dst, src))
	assert.Equal(t, 0, g.Replace(src, pa, src, dst))
	assert.Equal(t, before, g.Edges(src))
}

func TestRemove(t *testing.T) {
	g := New()
	src := g.NewNode()
	dst := g.NewNode()
	g.Connect(src, pa, dst)

	assert.Equal(t, 0, g.Remove(src, pb, dst), "absent edge")
	assert.Equal(t, 1, g.Remove(src, pa, dst))
	assert.False(t, g.HasOutEdges(src))
	assert.Equal(t, 0, g.Remove(src, pa, dst))
}

func TestRemoveCountsMultiplicity(t *testing.T) {
	g := New()
	src := g.NewNode()
	dst := g.NewNode()
	g.Connect(src, pa, dst)
	g.Connect(src, pb, dst)
	g.Connect(src, pa, dst)

	assert.Equal(t, 2, g.Remove(src, pa, dst))
	assert.Equal(t, []Edge{{Predicate: pb, Target: dst}}, g.Edges(src))
}

func TestContractViolationsPanic(t *testing.T) {
	g := New()
	n := g.NewNode()

	assert.Panics(t, func() { g.Replace(n, nil, n, n) })
	assert.Panics(t, func() { g.Remove(n, nil, n) })
	assert.Panics(t, func() { g.Append(n, nil) })
	assert.Panics(t, func() { g.Connect(n, pa, NodeID(7)) })
	assert.Panics(t, func() { g.HasOutEdges(NodeID(-1)) })
}

func TestTerminalFlag(t *testing.T) {
	g := New()
	n := g.NewNode()
	g.SetTerminal(n, true)
	assert.True(t, g.IsTerminal(n))
	g.SetTerminal(n, false)
	assert.False(t, g.IsTerminal(n))
}

func TestReachable(t *testing.T) {
	g := New()
	start := g.NewNode()
	x := g.Append(start, pa).IDs()[0]
	y := g.Append(start, pb).IDs()[0]
	z := g.Append(x, pc).IDs()[0]
	g.Connect(z, pa, start)
	orphan := g.NewNode()

	got := g.Reachable(start)
	assert.Equal(t, []NodeID{start, x, y, z}, got)
	assert.NotContains(t, got, orphan)
}

func TestFrontier(t *testing.T) {
	var f Frontier
	assert.Equal(t, 0, f.Len())
	assert.False(t, f.Contains(1))

	assert.True(t, f.Add(3))
	assert.True(t, f.Add(1))
	assert.False(t, f.Add(3))
	assert.Equal(t, []NodeID{3, 1}, f.IDs())

	u := Union(f, NewFrontier(1, 2), NewFrontier(4))
	assert.Equal(t, []NodeID{3, 1, 2, 4}, u.IDs())
	assert.True(t, u.Contains(4))
	assert.Equal(t, 2, f.Len(), "union does not mutate its inputs")

	assert.True(t, NewFrontier(1, 2).Equal(NewFrontier(2, 1)))
	assert.False(t, NewFrontier(1, 2).Equal(NewFrontier(1, 3)))
}
