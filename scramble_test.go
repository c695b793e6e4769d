package cubesim

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScramble(t *testing.T) {
	moves := Scramble(25, rand.New(rand.NewPCG(1, 2)))
	require.Len(t, moves, 25)
	for i, m := range moves {
		_, ok := m.Face.Layer()
		assert.True(t, ok)
		if i > 0 {
			assert.NotEqual(t, moves[i-1].Face, m.Face)
		}
	}

	again := Scramble(25, rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, moves, again)

	// A scramble undone in reverse returns to solved.
	c := New()
	require.NoError(t, c.Apply(moves...))
	for i := len(moves) - 1; i >= 0; i-- {
		require.NoError(t, c.Apply(moves[i].Inverse()))
	}
	assert.True(t, c.IsSolved())

	assert.Empty(t, Scramble(0, nil))
}
