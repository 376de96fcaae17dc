package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xxxsen/docchat/internal/model"
	appErr "github.com/xxxsen/docchat/internal/pkg/errors"
)

// Loader reads a local file fully into memory and returns its text segments.
// Implementations must not keep any handle to the file after returning.
type Loader interface {
	Load(ctx context.Context, path string) (*model.Document, error)
}

type Factory func() Loader

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func Register(ext string, factory Factory) {
	key := normalizeExt(ext)
	if key == "" || factory == nil {
		return
	}
	registryMu.Lock()
	registry[key] = factory
	registryMu.Unlock()
}

// New returns a loader for the given file name based on its extension.
func New(name string) (Loader, error) {
	key := normalizeExt(filepath.Ext(name))
	if key == "" {
		return nil, fmt.Errorf("%w: no extension in %q", appErr.ErrUnsupportedFormat, name)
	}
	registryMu.RLock()
	factory := registry[key]
	registryMu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", appErr.ErrUnsupportedFormat, key)
	}
	return factory(), nil
}

// Supported reports whether a loader is registered for the file name.
func Supported(name string) bool {
	key := normalizeExt(filepath.Ext(name))
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[key] != nil
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
