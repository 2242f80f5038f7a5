package analysis_test

import (
	"testing"
	"time"

	"github.com/inletdocs/pdf-insight-api/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePDFDate_FullTimestamp(t *testing.T) {
	parsed, ok := analysis.ParsePDFDate("D:20240115103000Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), parsed.UTC())
}

func TestParsePDFDate_WithoutPrefix(t *testing.T) {
	parsed, ok := analysis.ParsePDFDate("20240115103000")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), parsed.UTC())
}

func TestParsePDFDate_TimezoneOffset(t *testing.T) {
	parsed, ok := analysis.ParsePDFDate("D:20240115103000+02'00'")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC), parsed.UTC())
}

func TestParsePDFDate_NegativeOffset(t *testing.T) {
	parsed, ok := analysis.ParsePDFDate("D:20240115103000-05'30'")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 16, 0, 0, 0, time.UTC), parsed.UTC())
}

func TestParsePDFDate_PartialComponents(t *testing.T) {
	t.Run("year only", func(t *testing.T) {
		parsed, ok := analysis.ParsePDFDate("D:2024")
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), parsed.UTC())
	})

	t.Run("year and month", func(t *testing.T) {
		parsed, ok := analysis.ParsePDFDate("D:202406")
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), parsed.UTC())
	})

	t.Run("date without time", func(t *testing.T) {
		parsed, ok := analysis.ParsePDFDate("D:20240615")
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), parsed.UTC())
	})
}

func TestParsePDFDate_Invalid(t *testing.T) {
	cases := []string{"", "D:", "D:20", "not a date", "D:99999999999999"}
	for _, raw := range cases {
		_, ok := analysis.ParsePDFDate(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}

func TestExtractMetadata_MalformedDocument(t *testing.T) {
	doc := &analysis.Document{
		Name: "broken.pdf",
		Data: []byte("%PDF-1.4 this is not a real pdf body"),
	}

	result := analysis.ExtractMetadata(doc)
	assert.NotEmpty(t, result.Error)
	assert.Empty(t, result.Title)
}
