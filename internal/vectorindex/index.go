package vectorindex

import (
	"fmt"
	"math"
	"sort"

	"github.com/xxxsen/docchat/internal/model"
	appErr "github.com/xxxsen/docchat/internal/pkg/errors"
)

// Index is an exact nearest-neighbor index over one document's chunks. It is
// built per request and discarded with the request; it holds at most a few
// hundred entries, so brute-force cosine scoring is sufficient.
type Index struct {
	chunks  []model.Chunk
	vectors [][]float32
	dim     int
}

// Build creates an index from chunk/vector pairs. The two slices must be the
// same length and all vectors must share one dimension.
func Build(chunks []model.Chunk, vectors [][]float32) (*Index, error) {
	if len(chunks) == 0 {
		return nil, appErr.ErrEmptyIndex
	}
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("zero-dimension vector at position 0")
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector dimension mismatch at position %d: %d vs %d", i, len(v), dim)
		}
	}
	return &Index{chunks: chunks, vectors: vectors, dim: dim}, nil
}

// Query returns the k chunks most similar to the query vector, ordered by
// descending cosine similarity. Equal scores keep insertion order.
func (idx *Index) Query(query []float32, k int) ([]model.RetrievalResult, error) {
	if len(query) != idx.dim {
		return nil, fmt.Errorf("query dimension mismatch: %d vs %d", len(query), idx.dim)
	}
	if k <= 0 {
		k = 1
	}
	results := make([]model.RetrievalResult, 0, len(idx.chunks))
	for i, vec := range idx.vectors {
		results = append(results, model.RetrievalResult{
			Chunk: idx.chunks[i],
			Score: cosineSimilarity(query, vec),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int {
	return len(idx.chunks)
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
