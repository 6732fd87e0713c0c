package marker

import (
	"regexp"
	"strings"
)

// Models often wrap the whole reply in a markdown code fence even when asked
// not to. StripFence unwraps that one layer; inner fences stay untouched.
var fenceRe = regexp.MustCompile("(?s)^```markdown\\s*(.*?)\\s*```$")

// StripFence removes a leading ```markdown fence and its matching closing
// fence from a model reply. Replies without the wrapper are returned
// unchanged.
func StripFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if m := fenceRe.FindStringSubmatch(trimmed); len(m) > 1 {
		return m[1]
	}
	return s
}
