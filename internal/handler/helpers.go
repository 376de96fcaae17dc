package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/docchat/internal/pkg/errcode"
	appErr "github.com/xxxsen/docchat/internal/pkg/errors"
	"github.com/xxxsen/docchat/internal/pkg/response"
)

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, appErr.ErrUnsupportedFormat):
		response.Error(c, errcode.ErrUnsupportedFormat, "unsupported document format")
	case errors.Is(err, appErr.ErrDocumentLoad):
		response.Error(c, errcode.ErrDocumentLoad, "failed to load document")
	case errors.Is(err, appErr.ErrNoContent):
		response.Error(c, errcode.ErrNoContent, "document has no usable content")
	case errors.Is(err, appErr.ErrEmbedding):
		response.Error(c, errcode.ErrEmbeddingFailed, "embedding service unavailable")
	case errors.Is(err, appErr.ErrGeneration):
		response.Error(c, errcode.ErrGenerationFailed, "answer generation failed")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, "invalid request")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, errcode.ErrNotFound, "not found")
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
