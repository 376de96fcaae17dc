package model

// EmbeddingCacheItem is one durable cached embedding, keyed by the embedding
// model, the task type, and the sha256 of the embedded text.
type EmbeddingCacheItem struct {
	ModelName   string    `json:"model_name"`
	TaskType    string    `json:"task_type"`
	ContentHash string    `json:"content_hash"`
	Embedding   []float32 `json:"embedding"`
	Ctime       int64     `json:"ctime"`
}
