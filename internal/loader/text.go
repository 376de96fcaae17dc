package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xxxsen/docchat/internal/model"
	appErr "github.com/xxxsen/docchat/internal/pkg/errors"
)

var blankLines = regexp.MustCompile(`\n\s*\n`)

type textLoader struct{}

func init() {
	Register("txt", func() Loader { return &textLoader{} })
}

// Load splits plain text into blank-line separated paragraphs, one segment
// per paragraph.
func (l *textLoader) Load(ctx context.Context, path string) (*model.Document, error) {
	_ = ctx
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", appErr.ErrDocumentLoad, path, err)
	}
	name := filepath.Base(path)
	doc := &model.Document{Name: name}
	for _, para := range blankLines.Split(string(data), -1) {
		if strings.TrimSpace(para) == "" {
			continue
		}
		doc.Segments = append(doc.Segments, model.Segment{
			Text:   para,
			Source: name,
			Index:  len(doc.Segments),
		})
	}
	return doc, nil
}
