package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/docchat/internal/chat"
	"github.com/xxxsen/docchat/internal/model"
	appErr "github.com/xxxsen/docchat/internal/pkg/errors"
)

type stubAnswerer struct {
	result *chat.Result
	err    error
	got    chat.Request
}

func (s *stubAnswerer) Answer(ctx context.Context, req chat.Request) (*chat.Result, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newChatRouter(answerer *stubAnswerer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/chat", NewChatHandler(answerer).Create)
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestChatHandlerCreate_Success(t *testing.T) {
	answerer := &stubAnswerer{result: &chat.Result{
		Answer:    "the answer",
		SessionID: "sess-1",
		Usage:     model.Usage{TotalTokens: 42},
	}}
	engine := newChatRouter(answerer)

	rec := postJSON(t, engine, "/chat", `{"user_input":"what is this","data_source":"doc.txt","session_id":"sess-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "the answer")
	require.Contains(t, rec.Body.String(), "sess-1")
	require.Contains(t, rec.Body.String(), "42")

	require.Equal(t, "doc.txt", answerer.got.FileRef)
	require.Equal(t, "sess-1", answerer.got.SessionID)
	require.Equal(t, "what is this", answerer.got.Query)
}

func TestChatHandlerCreate_MissingFields(t *testing.T) {
	answerer := &stubAnswerer{result: &chat.Result{Answer: "a", SessionID: "s"}}
	engine := newChatRouter(answerer)

	rec := postJSON(t, engine, "/chat", `{"user_input":"  ","data_source":"doc.txt"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), `"answer"`)
	require.Empty(t, answerer.got.Query)

	rec = postJSON(t, engine, "/chat", `{"user_input":"hi","data_source":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, answerer.got.Query)
}

func TestChatHandlerCreate_BadJSON(t *testing.T) {
	answerer := &stubAnswerer{}
	engine := newChatRouter(answerer)

	rec := postJSON(t, engine, "/chat", `{not json`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, answerer.got.Query)
}

func TestChatHandlerCreate_PipelineErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "unsupported format", err: fmt.Errorf("wrap: %w", appErr.ErrUnsupportedFormat)},
		{name: "no content", err: appErr.ErrNoContent},
		{name: "embedding", err: appErr.ErrEmbedding},
		{name: "generation", err: appErr.ErrGeneration},
		{name: "internal", err: fmt.Errorf("boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answerer := &stubAnswerer{err: tt.err}
			engine := newChatRouter(answerer)

			rec := postJSON(t, engine, "/chat", `{"user_input":"hi","data_source":"doc.txt"}`)
			require.Equal(t, http.StatusOK, rec.Code)
			require.NotContains(t, rec.Body.String(), `"answer"`)
			require.Equal(t, "doc.txt", answerer.got.FileRef)
		})
	}
}
