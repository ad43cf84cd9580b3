package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedIDGenerator_Sequence(t *testing.T) {
	gen := NewFixedIDGenerator("auto")
	assert.Equal(t, "auto-0001", gen.Generate())
	assert.Equal(t, "auto-0002", gen.Generate())
	assert.Equal(t, "auto-0003", gen.Generate())
}

func TestFixedIDGenerator_DefaultPrefix(t *testing.T) {
	assert.Equal(t, "test-0001", NewFixedIDGenerator("").Generate())
}

func TestFixedIDGenerator_Reset(t *testing.T) {
	gen := NewFixedIDGenerator("x")
	gen.Generate()
	gen.Generate()
	gen.Reset()
	assert.Equal(t, "x-0001", gen.Generate())
}

func TestFixedIDGenerator_ConcurrentUnique(t *testing.T) {
	gen := NewFixedIDGenerator("c")

	const goroutines = 50
	ids := make(chan string, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- gen.Generate()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, goroutines)
}
