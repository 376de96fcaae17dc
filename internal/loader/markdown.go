package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/xxxsen/docchat/internal/model"
	appErr "github.com/xxxsen/docchat/internal/pkg/errors"
)

type markdownLoader struct{}

func init() {
	Register("md", func() Loader { return &markdownLoader{} })
	Register("markdown", func() Loader { return &markdownLoader{} })
}

// Load parses the markdown AST and emits one segment per top-level block.
func (l *markdownLoader) Load(ctx context.Context, path string) (*model.Document, error) {
	_ = ctx
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", appErr.ErrDocumentLoad, path, err)
	}

	md := goldmark.New()
	reader := gmtext.NewReader(source)
	root := md.Parser().Parse(reader)

	name := filepath.Base(path)
	doc := &model.Document{Name: name}
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		text := blockText(node, source)
		if strings.TrimSpace(text) == "" {
			continue
		}
		doc.Segments = append(doc.Segments, model.Segment{
			Text:   text,
			Source: name,
			Index:  len(doc.Segments),
		})
	}
	return doc, nil
}

func blockText(node ast.Node, source []byte) string {
	if code, ok := node.(*ast.FencedCodeBlock); ok {
		var sb strings.Builder
		for i := 0; i < code.Lines().Len(); i++ {
			line := code.Lines().At(i)
			sb.Write(line.Value(source))
		}
		return sb.String()
	}
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if n.Kind() == ast.KindText {
			sb.Write(n.(*ast.Text).Segment.Value(source))
			if n.(*ast.Text).SoftLineBreak() || n.(*ast.Text).HardLineBreak() {
				sb.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
