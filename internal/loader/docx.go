package loader

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xxxsen/docchat/internal/model"
	appErr "github.com/xxxsen/docchat/internal/pkg/errors"
)

type docxLoader struct{}

func init() {
	Register("docx", func() Loader { return &docxLoader{} })
}

// word/document.xml body shape; only paragraph text runs are of interest.
type docxDocument struct {
	Body struct {
		Paragraphs []docxParagraph `xml:"p"`
	} `xml:"body"`
}

type docxParagraph struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Text []docxText `xml:"t"`
}

type docxText struct {
	Content string `xml:",chardata"`
}

// Load opens the docx as a zip archive and turns each non-empty paragraph of
// word/document.xml into one segment.
func (l *docxLoader) Load(ctx context.Context, path string) (*model.Document, error) {
	_ = ctx
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open docx %s: %v", appErr.ErrDocumentLoad, path, err)
	}
	defer archive.Close()

	content, err := readArchiveFile(&archive.Reader, "word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", appErr.ErrDocumentLoad, path, err)
	}
	var parsed docxDocument
	if err := xml.Unmarshal(content, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parse docx %s: %v", appErr.ErrDocumentLoad, path, err)
	}

	name := filepath.Base(path)
	doc := &model.Document{Name: name}
	for _, para := range parsed.Body.Paragraphs {
		var sb strings.Builder
		for _, run := range para.Runs {
			for _, text := range run.Text {
				sb.WriteString(text.Content)
			}
		}
		if strings.TrimSpace(sb.String()) == "" {
			continue
		}
		doc.Segments = append(doc.Segments, model.Segment{
			Text:   sb.String(),
			Source: name,
			Index:  len(doc.Segments),
		})
	}
	return doc, nil
}

func readArchiveFile(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("missing %s", name)
}
