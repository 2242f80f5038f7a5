package mapper

import (
	"encoding/json"

	"github.com/inletdocs/pdf-insight-api/internal/domain"
)

const timeLayout = "2006-01-02T15:04:05Z"

// ToReportDTO converts a Report to its full DTO, decoding the stored
// analysis payloads. Undecodable payloads are returned as nil rather than
// failing the whole response.
func ToReportDTO(report *domain.Report) domain.ReportDTO {
	dto := domain.ReportDTO{
		ID:          report.ID,
		FileName:    report.FileName,
		BlobPath:    report.BlobPath,
		Status:      report.Status,
		ContentType: report.ContentType,
		SizeBytes:   report.SizeBytes,
		CreatedAt:   report.CreatedAt.UTC().Format(timeLayout),
		Error:       report.Error,
	}

	if report.AnalyzedAt != nil {
		dto.AnalyzedAt = report.AnalyzedAt.UTC().Format(timeLayout)
	}

	if report.Summary != "" {
		var summary domain.ReportSummary
		if err := json.Unmarshal([]byte(report.Summary), &summary); err == nil {
			dto.Summary = &summary
		}
	}

	analyses := &domain.AnalysisSet{}
	decoded := false
	if report.TextAnalysis != "" {
		if err := json.Unmarshal([]byte(report.TextAnalysis), &analyses.Text); err == nil {
			decoded = true
		}
	}
	if report.MetadataAnalysis != "" {
		if err := json.Unmarshal([]byte(report.MetadataAnalysis), &analyses.Metadata); err == nil {
			decoded = true
		}
	}
	if report.StatisticsAnalysis != "" {
		if err := json.Unmarshal([]byte(report.StatisticsAnalysis), &analyses.Statistics); err == nil {
			decoded = true
		}
	}
	if report.SensitiveAnalysis != "" {
		if err := json.Unmarshal([]byte(report.SensitiveAnalysis), &analyses.Sensitive); err == nil {
			decoded = true
		}
	}
	if decoded {
		dto.Analyses = analyses
	}

	return dto
}

// ToReportSummaryDTO converts a Report to its listing DTO
func ToReportSummaryDTO(report *domain.Report) domain.ReportSummaryDTO {
	dto := domain.ReportSummaryDTO{
		ID:       report.ID,
		FileName: report.FileName,
		Status:   report.Status,
	}

	if report.AnalyzedAt != nil {
		dto.AnalyzedAt = report.AnalyzedAt.UTC().Format(timeLayout)
	}

	if report.Summary != "" {
		var summary domain.ReportSummary
		if err := json.Unmarshal([]byte(report.Summary), &summary); err == nil {
			dto.Summary = &summary
		}
	}

	return dto
}

// ToReportListDTO converts a slice of Reports to the listing envelope
func ToReportListDTO(reports []domain.Report) domain.ReportListDTO {
	results := make([]domain.ReportSummaryDTO, 0, len(reports))
	for i := range reports {
		results = append(results, ToReportSummaryDTO(&reports[i]))
	}
	return domain.ReportListDTO{
		Count:   len(results),
		Results: results,
	}
}
