package marker

import (
	"strings"
	"testing"
)

func TestStripFence_WrappedReply(t *testing.T) {
	inner := "# Title\n\nBody text.\n\n[CHUNK_SEPARATOR]\n\nMore text."
	wrapped := "```markdown\n" + inner + "\n```"

	got := StripFence(wrapped)
	if got != inner {
		t.Errorf("expected inner text preserved, got %q", got)
	}
}

func TestStripFence_WrappedWithSurroundingWhitespace(t *testing.T) {
	inner := "content line"
	wrapped := "\n\n```markdown\n" + inner + "\n```\n"

	got := StripFence(wrapped)
	if got != inner {
		t.Errorf("got %q, want %q", got, inner)
	}
}

func TestStripFence_InnerFencesSurvive(t *testing.T) {
	inner := "Intro.\n\n```\ncode sample\n```\n\nOutro."
	wrapped := "```markdown\n" + inner + "\n```"

	got := StripFence(wrapped)
	if got != inner {
		t.Errorf("inner code fence must survive, got %q", got)
	}
}

func TestStripFence_UnwrappedReplyUnchanged(t *testing.T) {
	tests := []string{
		"plain text, no fences",
		"  leading whitespace preserved",
		"```markdown\nopener without a closing fence",
		"no opener\n```",
		"```json\n{}\n```", // wrong label for a document
	}
	for _, input := range tests {
		if got := StripFence(input); got != input {
			t.Errorf("StripFence(%q) = %q, want input unchanged", input, got)
		}
	}
}

func TestBuildPromptEmbedsMarkerAndText(t *testing.T) {
	prompt := BuildPrompt("[CHUNK_SEPARATOR]", "the document body")

	if !strings.Contains(prompt, "the document body") {
		t.Error("prompt must embed the document text")
	}
	if strings.Count(prompt, "[CHUNK_SEPARATOR]") < 3 {
		t.Errorf("prompt should reference the marker in instruction, constraints and closing, got %d occurrences", strings.Count(prompt, "[CHUNK_SEPARATOR]"))
	}
	if !strings.Contains(prompt, "on a new line by itself") {
		t.Error("prompt must carry the own-line constraint")
	}
	if !strings.Contains(prompt, "DO NOT change the original text content") {
		t.Error("prompt must carry the preservation constraint")
	}
}
