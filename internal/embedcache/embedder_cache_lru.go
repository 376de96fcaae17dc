package embedcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/docchat/internal/ai"
)

// WrapLRUCacheToEmbedder decorates an embedder with an in-process expiring
// cache. Within a batch only the cache misses are forwarded to the inner
// embedder, and the output order still matches the input order. Safe because
// embedding is deterministic for a fixed model configuration.
func WrapLRUCacheToEmbedder(e ai.IEmbedder, size int, ttl time.Duration) ai.IEmbedder {
	if e == nil || size <= 0 || ttl <= 0 {
		return e
	}
	return &lruEmbedder{
		next:  e,
		cache: expirable.NewLRU[string, []float32](size, nil, ttl),
	}
}

type lruEmbedder struct {
	next  ai.IEmbedder
	cache *expirable.LRU[string, []float32]
}

func (l *lruEmbedder) Embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	if l == nil || l.next == nil {
		return nil, nil
	}
	results := make([][]float32, len(texts))
	var missIdx []int
	var missTexts []string
	for i, text := range texts {
		key, _, _ := buildCacheKey(l.next.ModelName(), taskType, text)
		if cached, ok := l.cache.Get(key); ok {
			results[i] = cloneEmbedding(cached)
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}
	if len(missTexts) == 0 {
		logutil.GetLogger(ctx).Debug("embedding cache hit (lru)", zap.Int("count", len(texts)))
		return results, nil
	}
	fresh, err := l.next.Embed(ctx, missTexts, taskType)
	if err != nil {
		return nil, err
	}
	for j, i := range missIdx {
		key, _, _ := buildCacheKey(l.next.ModelName(), taskType, texts[i])
		l.cache.Add(key, cloneEmbedding(fresh[j]))
		results[i] = fresh[j]
	}
	return results, nil
}

func (l *lruEmbedder) ModelName() string {
	if l == nil || l.next == nil {
		return ""
	}
	return l.next.ModelName()
}

func cloneEmbedding(values []float32) []float32 {
	if len(values) == 0 {
		return nil
	}
	clone := make([]float32, len(values))
	copy(clone, values)
	return clone
}

func buildCacheKey(modelName, taskType, text string) (string, string, string) {
	modelName = strings.TrimSpace(modelName)
	if modelName == "" {
		modelName = "unknown"
	}
	hash := sha256.Sum256([]byte(text))
	contentHash := hex.EncodeToString(hash[:])
	return "embed:" + modelName + ":" + taskType + ":" + contentHash, contentHash, modelName
}
