package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/docchat/internal/filestore"
	"github.com/xxxsen/docchat/internal/loader"
	"github.com/xxxsen/docchat/internal/pkg/errcode"
	"github.com/xxxsen/docchat/internal/pkg/response"
)

type FileHandler struct {
	store    filestore.Store
	maxBytes int64
}

type uploadResponse struct {
	Filename string `json:"filename"`
	FilePath string `json:"file_path"`
}

func NewFileHandler(store filestore.Store, maxBytes int64) *FileHandler {
	return &FileHandler{store: store, maxBytes: maxBytes}
}

// Upload stores a document under its sanitized original name so chat
// requests can reference it by file name.
func (h *FileHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("data_file")
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "data_file is required")
		return
	}
	if h.maxBytes > 0 && file.Size > h.maxBytes {
		response.Error(c, errcode.ErrFileTooLarge, "file exceeds "+formatLimit(h.maxBytes))
		return
	}
	key := filepath.Base(file.Filename)
	if key == "" || key == "." || strings.ContainsAny(key, "\\") {
		response.Error(c, errcode.ErrInvalidFile, "invalid file name")
		return
	}
	if !loader.Supported(key) {
		response.Error(c, errcode.ErrUnsupportedFormat, "unsupported document format")
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to open file")
		return
	}
	defer opened.Close()

	if err := h.store.Save(c.Request.Context(), key, opened, file.Size); err != nil {
		handleError(c, errors.New("save upload: "+err.Error()))
		return
	}
	response.Success(c, uploadResponse{
		Filename: key,
		FilePath: key,
	})
}

// Get serves an object back from a local store. Object stores front their
// own downloads.
func (h *FileHandler) Get(c *gin.Context) {
	if h.store.Type() != "local" {
		c.Status(http.StatusNotFound)
		return
	}
	key := c.Param("key")
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, "\\") {
		c.Status(http.StatusBadRequest)
		return
	}
	file, err := h.store.Open(c.Request.Context(), key)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	defer file.Close()
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	_, _ = io.Copy(c.Writer, file)
}

func formatLimit(bytes int64) string {
	const mb = 1024 * 1024
	value := bytes / mb
	if value <= 0 {
		value = 1
	}
	return strconv.FormatInt(value, 10) + "MB"
}
