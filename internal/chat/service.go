package chat

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/docchat/internal/ai"
	"github.com/xxxsen/docchat/internal/chunker"
	"github.com/xxxsen/docchat/internal/filestore"
	"github.com/xxxsen/docchat/internal/loader"
	"github.com/xxxsen/docchat/internal/model"
	appErr "github.com/xxxsen/docchat/internal/pkg/errors"
	"github.com/xxxsen/docchat/internal/vectorindex"
)

// SessionStore is the conversation memory the service replays and appends to.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) ([]model.Turn, error)
	Append(ctx context.Context, sessionID, question, answer string) error
}

type Config struct {
	ChunkSize           int
	TopK                int
	MaxHistoryTurns     int
	TempDir             string
	Timeout             time.Duration
	PromptCostPer1K     float64
	CompletionCostPer1K float64
}

// Request is one chat turn: the document to ground on, an optional session to
// continue, and the user's question.
type Request struct {
	FileRef   string
	SessionID string
	Query     string
}

// Result carries the grounded answer, the session id (newly generated when
// the request had none), and the usage of the underlying model call.
type Result struct {
	Answer    string
	SessionID string
	Usage     model.Usage
}

// Service orchestrates one chat turn: fetch document, chunk, embed, retrieve,
// replay history, generate, persist. Each call is self-contained; the
// document, chunks, and index are rebuilt per request and discarded with it.
type Service struct {
	store     filestore.Store
	sessions  SessionStore
	embedder  ai.IEmbedder
	generator ai.IGenerator
	splitter  *chunker.Chunker
	cfg       Config
}

func NewService(store filestore.Store, sessions SessionStore, embedder ai.IEmbedder, generator ai.IGenerator, cfg Config) *Service {
	if cfg.TopK <= 0 {
		cfg.TopK = 1
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	return &Service{
		store:     store,
		sessions:  sessions,
		embedder:  embedder,
		generator: generator,
		splitter:  chunker.New(cfg.ChunkSize),
		cfg:       cfg,
	}
}

// Answer runs the full pipeline for one question. All steps are sequential;
// every failure before generation aborts with no side effects, and only the
// final history append is best-effort.
func (s *Service) Answer(ctx context.Context, req Request) (*Result, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" || strings.TrimSpace(req.FileRef) == "" {
		return nil, appErr.ErrInvalid
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	logger := logutil.GetLogger(ctx).With(zap.String("file_ref", req.FileRef))

	doc, err := s.loadDocument(ctx, req.FileRef)
	if err != nil {
		return nil, err
	}

	chunks := s.splitter.Split(doc)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: %s", appErr.ErrNoContent, doc.Name)
	}
	logger.Info("document chunked", zap.Int("segments", len(doc.Segments)), zap.Int("chunks", len(chunks)))

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	vectors, err := s.embedder.Embed(ctx, texts, ai.TaskRetrievalDocument)
	if err != nil {
		return nil, fmt.Errorf("%w: embed chunks: %v", appErr.ErrEmbedding, err)
	}
	queryVectors, err := s.embedder.Embed(ctx, []string{query}, ai.TaskRetrievalQuery)
	if err != nil || len(queryVectors) != 1 {
		return nil, fmt.Errorf("%w: embed query: %v", appErr.ErrEmbedding, err)
	}

	index, err := vectorindex.Build(chunks, vectors)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	passages, err := index.Query(queryVectors[0], s.cfg.TopK)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
		logger.Info("new session started", zap.String("session_id", sessionID))
	}
	history, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		// Memory is best-effort: answer from the document alone.
		logger.Warn("failed to load session history", zap.String("session_id", sessionID), zap.Error(err))
		history = nil
	}
	if s.cfg.MaxHistoryTurns > 0 && len(history) > s.cfg.MaxHistoryTurns {
		history = history[len(history)-s.cfg.MaxHistoryTurns:]
	}

	prompt := buildPrompt(passages, history, query)
	gen, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrGeneration, err)
	}
	answer := strings.TrimSpace(gen.Text)
	if answer == "" {
		return nil, fmt.Errorf("%w: empty model response", appErr.ErrGeneration)
	}

	usage := gen.Usage
	usage.Cost = s.estimateCost(usage)
	logger.Info("answer generated",
		zap.String("session_id", sessionID),
		zap.Int("prompt_tokens", usage.PromptTokens),
		zap.Int("completion_tokens", usage.CompletionTokens),
		zap.Int("total_tokens", usage.TotalTokens),
		zap.Float64("cost", usage.Cost),
	)

	if err := s.sessions.Append(ctx, sessionID, query, answer); err != nil {
		logger.Warn("history not persisted",
			zap.String("session_id", sessionID),
			zap.Error(fmt.Errorf("%w: %v", appErr.ErrSessionPersistence, err)),
		)
	}

	return &Result{Answer: answer, SessionID: sessionID, Usage: usage}, nil
}

// loadDocument resolves the file reference against the blob store, copies the
// object to a temp file, and loads it. The temp file is removed before
// returning so no handle outlives the call.
func (s *Service) loadDocument(ctx context.Context, fileRef string) (*model.Document, error) {
	key := path.Base(strings.TrimSpace(fileRef))
	ldr, err := loader.New(key)
	if err != nil {
		return nil, err
	}

	obj, err := s.store.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", appErr.ErrDocumentLoad, key, err)
	}
	defer obj.Close()

	tmp, err := os.CreateTemp(s.cfg.TempDir, "docchat-*"+strings.ToLower(filepath.Ext(key)))
	if err != nil {
		return nil, fmt.Errorf("%w: temp file: %v", appErr.ErrDocumentLoad, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := io.Copy(tmp, obj); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("%w: fetch %s: %v", appErr.ErrDocumentLoad, key, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: write %s: %v", appErr.ErrDocumentLoad, key, err)
	}

	doc, err := ldr.Load(ctx, tmpPath)
	if err != nil {
		return nil, err
	}
	// Keep the user-facing name, not the temp path.
	doc.Name = key
	for i := range doc.Segments {
		doc.Segments[i].Source = key
	}
	return doc, nil
}

func (s *Service) estimateCost(usage model.Usage) float64 {
	return float64(usage.PromptTokens)/1000*s.cfg.PromptCostPer1K +
		float64(usage.CompletionTokens)/1000*s.cfg.CompletionCostPer1K
}
