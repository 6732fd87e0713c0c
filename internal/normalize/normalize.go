// Package normalize applies the light regex cleanup a document needs before
// it is sent to the marker model.
package normalize

import (
	"regexp"
	"strings"
)

// Precompiled patterns.
var (
	// <br>, <br/>, <br /> in any case.
	brTag = regexp.MustCompile(`(?i)<br\s*/?>`)

	// A run of blank lines, including lines that only hold whitespace.
	blankRun = regexp.MustCompile(`\n\s*\n`)

	// Embedded image markup, self-closing or not.
	imgTag = regexp.MustCompile(`(?i)<img\s+[^>]*>`)

	// An isolated "0" placeholder line surrounded by blank lines. These are
	// OCR artifacts in exported brochure pages.
	zeroLine = regexp.MustCompile(`\n\n0\n\n`)
)

// Normalize replaces line-break tags with newlines and collapses runs of
// blank lines to a single blank line.
func Normalize(text string) string {
	text = brTag.ReplaceAllString(text, "\n")
	text = blankRun.ReplaceAllString(text, "\n\n")
	return text
}

// CleanupBrochure removes image markup and stray "0" placeholder lines.
// Intended for brochure-style exports; run it after Normalize so the
// placeholder lines sit between exactly one blank line on each side.
func CleanupBrochure(text string) string {
	text = imgTag.ReplaceAllString(text, "")
	text = zeroLine.ReplaceAllString(text, "\n\n")
	return text
}

// NeedsCleanup reports whether a file path belongs to the brochure category.
// Detection is a case-insensitive substring match on the path; an empty tag
// matches nothing.
func NeedsCleanup(path, tag string) bool {
	if tag == "" {
		return false
	}
	return strings.Contains(strings.ToLower(path), strings.ToLower(tag))
}
