package parser

import (
	"io"
)

// TextParser handles plain text files. The content passes through untouched;
// normalization happens later in the pipeline.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Document{
		Title: titleFromFilename(filename),
		Text:  string(src),
	}, nil
}
