package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/xxxsen/docchat/internal/model"
	appErr "github.com/xxxsen/docchat/internal/pkg/errors"
)

type pdfLoader struct{}

func init() {
	Register("pdf", func() Loader { return &pdfLoader{} })
}

// Load extracts plain text page by page, one segment per non-empty page.
func (l *pdfLoader) Load(ctx context.Context, path string) (*model.Document, error) {
	_ = ctx
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf %s: %v", appErr.ErrDocumentLoad, path, err)
	}
	defer file.Close()

	name := filepath.Base(path)
	doc := &model.Document{Name: name}
	total := reader.NumPage()
	for pageNum := 1; pageNum <= total; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: extract pdf page %d of %s: %v", appErr.ErrDocumentLoad, pageNum, name, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		doc.Segments = append(doc.Segments, model.Segment{
			Text:   text,
			Source: name,
			Page:   pageNum,
			Index:  len(doc.Segments),
		})
	}
	return doc, nil
}
