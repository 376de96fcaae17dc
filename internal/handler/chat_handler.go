package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/docchat/internal/chat"
	"github.com/xxxsen/docchat/internal/pkg/errcode"
	"github.com/xxxsen/docchat/internal/pkg/response"
)

// Answerer is the chat pipeline the handler drives.
type Answerer interface {
	Answer(ctx context.Context, req chat.Request) (*chat.Result, error)
}

type ChatHandler struct {
	chat Answerer
}

func NewChatHandler(chat Answerer) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatRequest struct {
	SessionID  string `json:"session_id"`
	UserInput  string `json:"user_input"`
	DataSource string `json:"data_source"`
}

type chatResponse struct {
	Answer          string `json:"answer"`
	TotalTokensUsed int    `json:"total_tokens_used"`
	SessionID       string `json:"session_id"`
}

func (h *ChatHandler) Create(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if strings.TrimSpace(req.UserInput) == "" {
		response.Error(c, errcode.ErrInvalid, "user_input is required")
		return
	}
	if strings.TrimSpace(req.DataSource) == "" {
		response.Error(c, errcode.ErrInvalid, "data_source is required")
		return
	}
	result, err := h.chat.Answer(c.Request.Context(), chat.Request{
		FileRef:   req.DataSource,
		SessionID: req.SessionID,
		Query:     req.UserInput,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, chatResponse{
		Answer:          result.Answer,
		TotalTokensUsed: result.Usage.TotalTokens,
		SessionID:       result.SessionID,
	})
}
