package model

// Chunk is a bounded slice of a document prepared for embedding. Segment is
// the index of the segment the text came from, Seq the position of the chunk
// in document order.
type Chunk struct {
	Text    string `json:"text"`
	Source  string `json:"source"`
	Page    int    `json:"page"`
	Segment int    `json:"segment"`
	Seq     int    `json:"seq"`
}

// RetrievalResult pairs a chunk with its similarity score for one query.
type RetrievalResult struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}
