package parser

import (
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files. The source text is kept verbatim —
// the marker model must see the original formatting — but the document is
// run through goldmark to pick a title from the first heading.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	title := firstHeading(src)
	if title == "" {
		title = titleFromFilename(filename)
	}

	return &Document{
		Title: title,
		Text:  string(src),
	}, nil
}

// firstHeading returns the text of the first heading in the document, or "".
func firstHeading(src []byte) string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			return string(h.Text(src))
		}
	}
	return ""
}
