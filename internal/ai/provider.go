package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xxxsen/docchat/internal/model"
)

// ErrUnavailable means the provider is not configured (missing key) or the
// upstream rejected the call outright.
var ErrUnavailable = errors.New("ai provider unavailable")

// Task types passed to embedding providers that distinguish document and
// query embeddings.
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// GenerateResult is one completed LLM call: the answer text plus the token
// usage the provider reported. Cost is filled in by the caller.
type GenerateResult struct {
	Text  string
	Usage model.Usage
}

type IChatProvider interface {
	Name() string
	Generate(ctx context.Context, model string, prompt string) (*GenerateResult, error)
}

// IEmbedProvider maps a batch of texts to vectors, order-preserving, one
// vector per input text.
type IEmbedProvider interface {
	Name() string
	Embed(ctx context.Context, model string, texts []string, taskType string) ([][]float32, error)
}

// IGenerator is an IChatProvider bound to a concrete model name.
type IGenerator interface {
	Generate(ctx context.Context, prompt string) (*GenerateResult, error)
}

// IEmbedder is an IEmbedProvider bound to a concrete model name.
type IEmbedder interface {
	Embed(ctx context.Context, texts []string, taskType string) ([][]float32, error)
	ModelName() string
}

type generator struct {
	provider IChatProvider
	model    string
}

func NewGenerator(p IChatProvider, model string) IGenerator {
	return &generator{provider: p, model: model}
}

func (g *generator) Generate(ctx context.Context, prompt string) (*GenerateResult, error) {
	return g.provider.Generate(ctx, g.model, prompt)
}

type embedder struct {
	provider IEmbedProvider
	model    string
}

func NewEmbedder(p IEmbedProvider, model string) IEmbedder {
	return &embedder{provider: p, model: model}
}

func (e *embedder) Embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	return e.provider.Embed(ctx, e.model, texts, taskType)
}

func (e *embedder) ModelName() string {
	return e.model
}

type ChatFactory func(args interface{}) (IChatProvider, error)

type EmbedFactory func(args interface{}) (IEmbedProvider, error)

var (
	chatRegistry  = map[string]ChatFactory{}
	embedRegistry = map[string]EmbedFactory{}
)

func Register(name string, factory ChatFactory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	chatRegistry[key] = factory
}

func RegisterEmbed(name string, factory EmbedFactory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	embedRegistry[key] = factory
}

func NewChatProvider(name string, args interface{}) (IChatProvider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("ai.provider is required")
	}
	factory := chatRegistry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported ai provider: %s", name)
	}
	return factory(args)
}

func NewEmbedProvider(name string, args interface{}) (IEmbedProvider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("ai.provider is required")
	}
	factory := embedRegistry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported ai embed provider: %s", name)
	}
	return factory(args)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("ai provider config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode ai provider config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode ai provider config: %w", err)
	}
	return nil
}
