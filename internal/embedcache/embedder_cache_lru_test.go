package embedcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingEmbedder struct {
	calls int
	seen  [][]string
}

func (c *countingEmbedder) Embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	c.calls++
	c.seen = append(c.seen, append([]string(nil), texts...))
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		out = append(out, []float32{float32(len(text)), 1})
	}
	return out, nil
}

func (c *countingEmbedder) ModelName() string { return "counting" }

func TestLRUEmbedder_SecondCallHitsCache(t *testing.T) {
	inner := &countingEmbedder{}
	cached := WrapLRUCacheToEmbedder(inner, 16, time.Minute)

	first, err := cached.Embed(context.Background(), []string{"alpha", "beta"}, "doc")
	require.NoError(t, err)
	require.Equal(t, 1, inner.calls)

	second, err := cached.Embed(context.Background(), []string{"alpha", "beta"}, "doc")
	require.NoError(t, err)
	require.Equal(t, 1, inner.calls)
	require.Equal(t, first, second)
}

func TestLRUEmbedder_PartialHitForwardsOnlyMisses(t *testing.T) {
	inner := &countingEmbedder{}
	cached := WrapLRUCacheToEmbedder(inner, 16, time.Minute)

	_, err := cached.Embed(context.Background(), []string{"alpha"}, "doc")
	require.NoError(t, err)

	got, err := cached.Embed(context.Background(), []string{"alpha", "gamma", "beta"}, "doc")
	require.NoError(t, err)
	require.Equal(t, 2, inner.calls)
	require.Equal(t, []string{"gamma", "beta"}, inner.seen[1])

	// Order follows the input, not hit/miss grouping.
	require.Equal(t, []float32{5, 1}, got[0])
	require.Equal(t, []float32{5, 1}, got[1])
	require.Equal(t, []float32{4, 1}, got[2])
}

func TestLRUEmbedder_TaskTypeSeparatesEntries(t *testing.T) {
	inner := &countingEmbedder{}
	cached := WrapLRUCacheToEmbedder(inner, 16, time.Minute)

	_, err := cached.Embed(context.Background(), []string{"alpha"}, "doc")
	require.NoError(t, err)
	_, err = cached.Embed(context.Background(), []string{"alpha"}, "query")
	require.NoError(t, err)
	require.Equal(t, 2, inner.calls)
}

func TestLRUEmbedder_CachedVectorIsIsolated(t *testing.T) {
	inner := &countingEmbedder{}
	cached := WrapLRUCacheToEmbedder(inner, 16, time.Minute)

	first, err := cached.Embed(context.Background(), []string{"alpha"}, "doc")
	require.NoError(t, err)
	first[0][0] = 999

	second, err := cached.Embed(context.Background(), []string{"alpha"}, "doc")
	require.NoError(t, err)
	require.Equal(t, float32(5), second[0][0])
}

func TestWrapLRUCacheToEmbedder_DisabledPassesThrough(t *testing.T) {
	inner := &countingEmbedder{}
	require.Equal(t, inner, WrapLRUCacheToEmbedder(inner, 0, time.Minute))
	require.Equal(t, inner, WrapLRUCacheToEmbedder(inner, 16, 0))
}

func TestBuildCacheKey_Stable(t *testing.T) {
	k1, hash1, m1 := buildCacheKey("m", "doc", "text")
	k2, hash2, m2 := buildCacheKey("m", "doc", "text")
	require.Equal(t, k1, k2)
	require.Equal(t, hash1, hash2)
	require.Equal(t, "m", m1)
	require.Equal(t, m1, m2)

	k3, _, _ := buildCacheKey("m", "query", "text")
	require.NotEqual(t, k1, k3)
}
