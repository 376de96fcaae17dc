package chunker

import (
	"strings"

	"github.com/xxxsen/docchat/internal/model"
)

const DefaultChunkSize = 1000

// defaultSeparators is the ordered cascade of split strategies: prefer
// paragraph boundaries, then spaces, then a hard cut. The empty string marks
// the hard character cut and must come last.
var defaultSeparators = []string{"\n", " ", ""}

// Chunker splits document segments into chunks of at most maxSize runes with
// zero overlap. Splitting is deterministic and lossless: concatenating the
// chunk texts of a segment reproduces the segment text exactly.
type Chunker struct {
	maxSize    int
	separators []string
}

func New(maxSize int) *Chunker {
	if maxSize <= 0 {
		maxSize = DefaultChunkSize
	}
	return &Chunker{maxSize: maxSize, separators: defaultSeparators}
}

// Split chunks every segment of the document independently, preserving
// document order. Empty segments produce no chunks.
func (c *Chunker) Split(doc *model.Document) []model.Chunk {
	if doc == nil {
		return nil
	}
	var chunks []model.Chunk
	for _, seg := range doc.Segments {
		if seg.Text == "" {
			continue
		}
		for _, part := range c.splitText(seg.Text, c.separators) {
			chunks = append(chunks, model.Chunk{
				Text:    part,
				Source:  seg.Source,
				Page:    seg.Page,
				Segment: seg.Index,
				Seq:     len(chunks),
			})
		}
	}
	return chunks
}

// splitText breaks text into pieces of at most maxSize runes, trying each
// separator of the cascade in order. Separators are kept attached to the
// piece they terminate so no characters are lost.
func (c *Chunker) splitText(text string, separators []string) []string {
	if len([]rune(text)) <= c.maxSize {
		return []string{text}
	}
	sep := separators[0]
	if sep == "" {
		return c.hardCut(text)
	}

	pieces := splitAfter(text, sep)
	var out []string
	var current strings.Builder
	currentLen := 0
	flush := func() {
		if current.Len() > 0 {
			out = append(out, current.String())
			current.Reset()
			currentLen = 0
		}
	}
	for _, piece := range pieces {
		pieceLen := len([]rune(piece))
		if pieceLen > c.maxSize {
			// No boundary of this kind fits; fall through to the next
			// strategy for this piece alone.
			flush()
			out = append(out, c.splitText(piece, separators[1:])...)
			continue
		}
		if currentLen+pieceLen > c.maxSize {
			flush()
		}
		current.WriteString(piece)
		currentLen += pieceLen
	}
	flush()
	return out
}

func (c *Chunker) hardCut(text string) []string {
	runes := []rune(text)
	var out []string
	for start := 0; start < len(runes); start += c.maxSize {
		end := start + c.maxSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}

// splitAfter splits text on sep, keeping sep at the end of each piece.
func splitAfter(text, sep string) []string {
	parts := strings.SplitAfter(text, sep)
	// SplitAfter yields a trailing empty part when text ends with sep.
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
