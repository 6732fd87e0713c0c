package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser handles CSV files. Rows are rendered as header-labelled lines in
// batches, each batch under its own heading, so the marker model has natural
// boundaries to work with.
type CSVParser struct{}

const csvBatchSize = 20

func (p *CSVParser) Parse(r io.Reader, filename string) (*Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &Document{Title: titleFromFilename(filename)}
	if len(records) == 0 {
		return doc, nil
	}

	headers := records[0]
	dataRows := records[1:]

	var sb strings.Builder
	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := min(i+csvBatchSize, len(dataRows))

		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		// 1-indexed source line numbers, skipping the header row.
		sb.WriteString(fmt.Sprintf("## Rows %d-%d\n\n", i+2, end+1))

		for _, row := range dataRows[i:end] {
			for j, cell := range row {
				if j < len(headers) {
					sb.WriteString(headers[j] + ": " + cell)
				} else {
					sb.WriteString(cell)
				}
				if j < len(row)-1 {
					sb.WriteString(", ")
				}
			}
			sb.WriteString("\n")
		}
	}

	doc.Text = sb.String()
	return doc, nil
}
