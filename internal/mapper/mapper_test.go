package mapper_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inletdocs/pdf-insight-api/internal/domain"
	"github.com/inletdocs/pdf-insight-api/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToReportDTO_DecodesPayloads(t *testing.T) {
	analyzedAt := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	report := &domain.Report{
		ID:          uuid.New(),
		FileName:    "contract.pdf",
		BlobPath:    "pdf/contract.pdf",
		Status:      domain.ReportStatusCompleted,
		ContentType: "application/pdf",
		SizeBytes:   2048,
		CreatedAt:   time.Date(2024, 3, 10, 11, 59, 0, 0, time.UTC),
		AnalyzedAt:  &analyzedAt,

		Summary:            `{"format":"application/pdf","hasText":true}`,
		TextAnalysis:       `{"hasText":true,"extractedText":"hello world"}`,
		MetadataAnalysis:   `{"title":"Contract","author":"Jane"}`,
		StatisticsAnalysis: `{"pageCount":3,"wordCount":600,"avgWordsPerPage":200,"estimatedReadingTimeMin":3}`,
		SensitiveAnalysis:  `{"emails":["jane@example.com"],"phones":[],"urls":[],"dates":[]}`,
	}

	dto := mapper.ToReportDTO(report)

	assert.Equal(t, report.ID, dto.ID)
	assert.Equal(t, "contract.pdf", dto.FileName)
	assert.Equal(t, "2024-03-10T12:00:00Z", dto.AnalyzedAt)
	assert.Equal(t, "2024-03-10T11:59:00Z", dto.CreatedAt)

	require.NotNil(t, dto.Summary)
	assert.Equal(t, "application/pdf", dto.Summary.Format)
	assert.True(t, dto.Summary.HasText)

	require.NotNil(t, dto.Analyses)
	assert.Equal(t, "hello world", dto.Analyses.Text.ExtractedText)
	assert.Equal(t, "Contract", dto.Analyses.Metadata.Title)
	assert.Equal(t, 3, dto.Analyses.Statistics.PageCount)
	assert.Equal(t, []string{"jane@example.com"}, dto.Analyses.Sensitive.Emails)
}

func TestToReportDTO_PendingReport(t *testing.T) {
	report := &domain.Report{
		ID:       uuid.New(),
		FileName: "queued.pdf",
		BlobPath: "pdf/queued.pdf",
		Status:   domain.ReportStatusPending,
	}

	dto := mapper.ToReportDTO(report)

	assert.Empty(t, dto.AnalyzedAt)
	assert.Nil(t, dto.Summary)
	assert.Nil(t, dto.Analyses)
}

func TestToReportDTO_UndecodablePayload(t *testing.T) {
	report := &domain.Report{
		ID:       uuid.New(),
		FileName: "odd.pdf",
		BlobPath: "pdf/odd.pdf",
		Status:   domain.ReportStatusCompleted,
		Summary:  "{broken json",
	}

	dto := mapper.ToReportDTO(report)
	assert.Nil(t, dto.Summary)
}

func TestToReportListDTO(t *testing.T) {
	analyzedAt := time.Now().UTC()
	reports := []domain.Report{
		{
			ID:         uuid.New(),
			FileName:   "a.pdf",
			Status:     domain.ReportStatusCompleted,
			AnalyzedAt: &analyzedAt,
			Summary:    `{"format":"application/pdf","hasText":true}`,
		},
		{
			ID:       uuid.New(),
			FileName: "b.pdf",
			Status:   domain.ReportStatusPending,
		},
	}

	dto := mapper.ToReportListDTO(reports)

	assert.Equal(t, 2, dto.Count)
	require.Len(t, dto.Results, 2)
	assert.Equal(t, "a.pdf", dto.Results[0].FileName)
	require.NotNil(t, dto.Results[0].Summary)
	assert.Nil(t, dto.Results[1].Summary)
}

func TestToReportListDTO_Empty(t *testing.T) {
	dto := mapper.ToReportListDTO(nil)

	assert.Equal(t, 0, dto.Count)
	assert.NotNil(t, dto.Results)
}
