// Package analysis implements the per-document analyses: text extraction,
// metadata extraction, document statistics, and sensitive data detection.
// Every analyzer degrades instead of failing: a parse error or panic is
// recorded on the result's Error field and zero values are returned, so one
// bad analysis never aborts the rest of the document's pipeline run.
package analysis

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

// Document is one unit of work for the analyzers
type Document struct {
	// Name is the blob path of the document
	Name string
	// Data is the raw document content
	Data []byte
}

// DetectFormat returns the MIME type of the document content
func DetectFormat(data []byte) string {
	return mimetype.Detect(data).String()
}

// IsPDF reports whether the content sniffs as a PDF
func IsPDF(data []byte) bool {
	return mimetype.Detect(data).Is("application/pdf")
}

// newReader opens a PDF reader over the document bytes
func newReader(doc *Document) (*pdf.Reader, error) {
	return pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
}

// pageTexts extracts the plain text of each page. Pages that fail to decode
// are skipped; the slice holds one entry per page that produced text.
func pageTexts(r *pdf.Reader) []string {
	var texts []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || text == "" {
			continue
		}
		texts = append(texts, text)
	}
	return texts
}

// recovered converts an analyzer panic into an error. The PDF parser panics
// on some malformed inputs, and a corrupt document must not take a pipeline
// worker down with it.
func recovered(rec interface{}) error {
	if rec == nil {
		return nil
	}
	if err, ok := rec.(error); ok {
		return fmt.Errorf("pdf parse panic: %w", err)
	}
	return fmt.Errorf("pdf parse panic: %v", rec)
}

// joinPages concatenates per-page texts the way the analyses expect
func joinPages(texts []string) string {
	return strings.Join(texts, "\n")
}
