package model

// Usage records the token consumption and estimated cost of one model call.
// It is attached to the chat response and never persisted.
type Usage struct {
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	Cost             float64 `json:"cost"`
}
