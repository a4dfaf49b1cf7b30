package report

import (
	"io"

	"github.com/sampleforge/sitecatalog/internal/model"
)

// Writer defines the interface for report output.
// Implementations write catalog results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// WriteBatch outputs a batch enrichment summary.
	// Returns the number of bytes written and any error encountered.
	WriteBatch(report *model.BatchReport) (int, error)

	// WriteSearch outputs one page of search results.
	WriteSearch(result *SearchPage) (int, error)
}

// SearchPage is one page of ranked search results plus the query
// context needed to render it.
type SearchPage struct {
	// Query is the raw search input.
	Query string `json:"query"`

	// Total is the number of matches across all pages.
	Total int `json:"total"`

	// Offset is the index of the first row in Sites.
	Offset int `json:"offset"`

	// Sites is the ranked page slice, highest score first.
	Sites []model.Site `json:"sites"`
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteBatch outputs the batch report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) WriteBatch(report *model.BatchReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteBatch(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteSearch outputs the search page to all configured Writers.
func (m *MultiWriter) WriteSearch(result *SearchPage) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteSearch(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
