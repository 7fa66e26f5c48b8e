package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 32; i++ {
		require.Equal(t, a.Float64(), b.Float64(), "draw %d", i)
	}
}

func TestNewDifferentSeeds(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 16; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	assert.Less(t, same, 16)
}

func TestUniformRange(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		v := Uniform(s, 0.6, 1.0)
		require.GreaterOrEqual(t, v, 0.6)
		require.Less(t, v, 1.0)
	}
}

func TestPickCoversAllItems(t *testing.T) {
	s := New(3)
	items := []string{"amber", "white", "cyan"}
	seen := map[string]int{}
	for i := 0; i < 300; i++ {
		seen[Pick(s, items)]++
	}
	assert.Len(t, seen, len(items))
}

func TestPickEmptyPanics(t *testing.T) {
	assert.Panics(t, func() { Pick(New(1), []int{}) })
}
