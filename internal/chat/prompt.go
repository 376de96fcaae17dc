package chat

import (
	"fmt"
	"strings"

	"github.com/xxxsen/docchat/internal/model"
)

// buildPrompt assembles the grounded prompt: retrieved passages first, then
// the replayed conversation, then the question.
func buildPrompt(passages []model.RetrievalResult, history []model.Turn, question string) string {
	var sb strings.Builder
	sb.WriteString(`You are a helpful assistant answering questions about a document.
Answer using ONLY the context passages below.
- If the context does not contain the answer, say you do not know.
- Answer in the same language as the question.
- Do not mention the passages or their numbering.

CONTEXT:
`)
	for i, passage := range passages {
		locator := passage.Chunk.Source
		if passage.Chunk.Page > 0 {
			locator = fmt.Sprintf("%s, page %d", locator, passage.Chunk.Page)
		}
		sb.WriteString(fmt.Sprintf("[%d] (%s)\n%s\n\n", i+1, locator, passage.Chunk.Text))
	}

	if len(history) > 0 {
		sb.WriteString("CONVERSATION SO FAR:\n")
		for _, turn := range history {
			sb.WriteString("User: ")
			sb.WriteString(turn.Question)
			sb.WriteString("\nAssistant: ")
			sb.WriteString(turn.Answer)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("QUESTION:\n")
	sb.WriteString(question)
	return sb.String()
}
