package knowledge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeBee/resumesite/internal/testutil"
)

func TestNewEmbeddingFunc(t *testing.T) {
	setup := testutil.Setup(t)

	embed := NewEmbeddingFunc(setup.Embedder)

	vec, err := embed(context.Background(), "Go developer")
	require.NoError(t, err)
	assert.Len(t, vec, testutil.EmbeddingDim)

	// Deterministic: same text, same vector.
	vec2, err := embed(context.Background(), "Go developer")
	require.NoError(t, err)
	assert.Equal(t, vec, vec2)

	// Different text, different vector.
	other, err := embed(context.Background(), "cooking")
	require.NoError(t, err)
	assert.NotEqual(t, vec, other)
}
