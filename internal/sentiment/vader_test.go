package sentiment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaderScorer_Sign(t *testing.T) {
	v := NewVaderScorer()
	ctx := context.Background()

	pos, err := v.Score(ctx, "I love this, it is absolutely great!")
	require.NoError(t, err)
	assert.Greater(t, pos, 0.0)

	neg, err := v.Score(ctx, "This is terrible and I hate it.")
	require.NoError(t, err)
	assert.Less(t, neg, 0.0)

	neutral, err := v.Score(ctx, "Tuesday at noon")
	require.NoError(t, err)
	assert.Equal(t, 0.0, neutral)

	empty, err := v.Score(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty)
}

func TestVaderScorer_RangeAndDeterminism(t *testing.T) {
	v := NewVaderScorer()
	texts := []string{
		"GREAT GREAT GREAT!!! best day ever :)",
		"worst, awful, horrible, disgusting!!!",
		"meh",
	}
	for _, text := range texts {
		first, err := v.Score(context.Background(), text)
		require.NoError(t, err)
		second, err := v.Score(context.Background(), text)
		require.NoError(t, err)

		assert.Equal(t, first, second, text)
		assert.GreaterOrEqual(t, first, -1.0, text)
		assert.LessOrEqual(t, first, 1.0, text)
	}
}
