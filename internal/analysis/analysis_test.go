package analysis_test

import (
	"testing"

	"github.com/inletdocs/pdf-insight-api/internal/analysis"
	"github.com/stretchr/testify/assert"
)

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, "application/pdf", analysis.DetectFormat([]byte("%PDF-1.7\n1 0 obj")))
	assert.Equal(t, "text/plain; charset=utf-8", analysis.DetectFormat([]byte("just some text")))
}

func TestIsPDF(t *testing.T) {
	assert.True(t, analysis.IsPDF([]byte("%PDF-1.4\n%binary")))
	assert.False(t, analysis.IsPDF([]byte("<html></html>")))
	assert.False(t, analysis.IsPDF(nil))
}

func TestExtractText_MalformedDocument(t *testing.T) {
	doc := &analysis.Document{
		Name: "broken.pdf",
		Data: []byte("%PDF-1.4 truncated"),
	}

	result := analysis.ExtractText(doc)
	assert.NotEmpty(t, result.Error)
	assert.False(t, result.HasText)
	assert.Empty(t, result.ExtractedText)
}

func TestExtractText_EmptyDocument(t *testing.T) {
	doc := &analysis.Document{Name: "empty.pdf", Data: nil}

	result := analysis.ExtractText(doc)
	assert.NotEmpty(t, result.Error)
	assert.False(t, result.HasText)
}
