package marker

import (
	"fmt"
	"strings"
)

// SystemInstruction frames the model as a document structure analyst.
const SystemInstruction = "You are an expert in document structure analysis. Read the provided text and identify meaningful breaks where the topic or section changes."

// BuildPrompt creates the user prompt asking the model to insert the marker
// token at semantic section boundaries, embedding the full document text.
func BuildPrompt(marker, text string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Read the following text and insert a special marker symbol %s at the end of each meaningful section or unit. Examples of meaningful breaks include the end of a chapter, the end of a major section, the end of a profile, or a significant topic change.\n\n", marker))
	sb.WriteString("Constraints:\n")
	sb.WriteString(fmt.Sprintf("- DO NOT change the original text content except for inserting the marker symbol `%s`.\n", marker))
	sb.WriteString("- Maintain the Markdown formatting (headers, lists, tables, etc.) as much as possible.\n")
	sb.WriteString(fmt.Sprintf("- The marker symbol should be inserted on a new line by itself (e.g., \\n%s\\n).\n", marker))
	sb.WriteString("- Do not consider the original text length when deciding where to insert markers; base your decision on the meaning and structure of the text.\n")
	sb.WriteString("\nText:\n---\n")
	sb.WriteString(text)
	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("Please provide the text with the %s marker inserted at the appropriate breaks.", marker))
	return sb.String()
}
