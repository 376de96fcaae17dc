package embedcache

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/docchat/internal/ai"
	"github.com/xxxsen/docchat/internal/model"
	"github.com/xxxsen/docchat/internal/repo"
)

// WrapDBCacheToEmbedder decorates an embedder with a durable, cross-process
// cache keyed by (model, task type, content hash). Lookup failures fall back
// to the provider; save failures are logged and ignored.
func WrapDBCacheToEmbedder(e ai.IEmbedder, cacheRepo *repo.EmbeddingCacheRepo) ai.IEmbedder {
	if e == nil || cacheRepo == nil {
		return e
	}
	return &dbEmbedder{next: e, repo: cacheRepo}
}

type dbEmbedder struct {
	next ai.IEmbedder
	repo *repo.EmbeddingCacheRepo
}

func (d *dbEmbedder) Embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	if d == nil || d.next == nil {
		return nil, nil
	}
	logger := logutil.GetLogger(ctx)
	results := make([][]float32, len(texts))
	var missIdx []int
	var missTexts []string
	for i, text := range texts {
		_, contentHash, modelName := buildCacheKey(d.next.ModelName(), taskType, text)
		values, ok, err := d.repo.Get(ctx, modelName, taskType, contentHash)
		if err != nil {
			logger.Warn("embedding cache lookup failed", zap.Error(err))
		}
		if ok {
			results[i] = values
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}
	if len(missTexts) == 0 {
		logger.Debug("embedding cache hit (db)", zap.Int("count", len(texts)))
		return results, nil
	}
	fresh, err := d.next.Embed(ctx, missTexts, taskType)
	if err != nil {
		return nil, err
	}
	now := time.Now().Unix()
	for j, i := range missIdx {
		_, contentHash, modelName := buildCacheKey(d.next.ModelName(), taskType, texts[i])
		if err := d.repo.Save(ctx, &model.EmbeddingCacheItem{
			ModelName:   modelName,
			TaskType:    taskType,
			ContentHash: contentHash,
			Embedding:   fresh[j],
			Ctime:       now,
		}); err != nil {
			logger.Warn("failed to cache embedding", zap.Error(err))
		}
		results[i] = fresh[j]
	}
	return results, nil
}

func (d *dbEmbedder) ModelName() string {
	if d == nil || d.next == nil {
		return ""
	}
	return d.next.ModelName()
}
