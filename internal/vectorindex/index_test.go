package vectorindex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/docchat/internal/model"
	appErr "github.com/xxxsen/docchat/internal/pkg/errors"
)

func mkChunks(texts ...string) []model.Chunk {
	out := make([]model.Chunk, 0, len(texts))
	for i, txt := range texts {
		out = append(out, model.Chunk{Text: txt, Source: "a.txt", Seq: i})
	}
	return out
}

func TestBuild_EmptyIndex(t *testing.T) {
	_, err := Build(nil, nil)
	require.ErrorIs(t, err, appErr.ErrEmptyIndex)
}

func TestBuild_CountMismatch(t *testing.T) {
	_, err := Build(mkChunks("a", "b"), [][]float32{{1, 0}})
	require.Error(t, err)
	require.NotErrorIs(t, err, appErr.ErrEmptyIndex)
}

func TestBuild_DimensionMismatch(t *testing.T) {
	_, err := Build(mkChunks("a", "b"), [][]float32{{1, 0}, {1, 0, 0}})
	require.Error(t, err)
}

func TestQuery_RanksByCosineSimilarity(t *testing.T) {
	idx, err := Build(mkChunks("x", "y", "z"), [][]float32{
		{0, 1},
		{1, 0},
		{0.5, 0.5},
	})
	require.NoError(t, err)

	got, err := idx.Query([]float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "y", got[0].Chunk.Text)
	require.Equal(t, "z", got[1].Chunk.Text)
	require.Equal(t, "x", got[2].Chunk.Text)
	require.InDelta(t, 1.0, got[0].Score, 1e-9)
	require.InDelta(t, 0.0, got[2].Score, 1e-9)
}

func TestQuery_TieKeepsInsertionOrder(t *testing.T) {
	idx, err := Build(mkChunks("first", "second", "third"), [][]float32{
		{1, 0},
		{1, 0},
		{0, 1},
	})
	require.NoError(t, err)

	got, err := idx.Query([]float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "first", got[0].Chunk.Text)
	require.Equal(t, "second", got[1].Chunk.Text)
}

func TestQuery_ClipsKToIndexSize(t *testing.T) {
	idx, err := Build(mkChunks("only"), [][]float32{{1, 1}})
	require.NoError(t, err)

	got, err := idx.Query([]float32{1, 1}, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 1, idx.Len())
}

func TestQuery_DefaultsKToOne(t *testing.T) {
	idx, err := Build(mkChunks("a", "b"), [][]float32{{1, 0}, {0, 1}})
	require.NoError(t, err)

	got, err := idx.Query([]float32{0, 1}, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "b", got[0].Chunk.Text)
}

func TestQuery_DimensionMismatch(t *testing.T) {
	idx, err := Build(mkChunks("a"), [][]float32{{1, 0}})
	require.NoError(t, err)

	_, err = idx.Query([]float32{1, 0, 0}, 1)
	require.Error(t, err)
}
