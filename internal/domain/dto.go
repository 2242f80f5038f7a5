package domain

import "github.com/google/uuid"

// ReportDTO is the full report returned by GET /reports/{id}
type ReportDTO struct {
	ID          uuid.UUID    `json:"id"`
	FileName    string       `json:"fileName"`
	BlobPath    string       `json:"blobPath"`
	Status      ReportStatus `json:"status"`
	ContentType string       `json:"contentType,omitempty"`
	SizeBytes   int64        `json:"sizeBytes,omitempty"`
	AnalyzedAt  string       `json:"analyzedAt,omitempty"`
	CreatedAt   string       `json:"createdAt"`
	Error       string       `json:"error,omitempty"`

	Summary  *ReportSummary `json:"summary,omitempty"`
	Analyses *AnalysisSet   `json:"analyses,omitempty"`
}

// ReportSummaryDTO is the condensed report returned in listings
type ReportSummaryDTO struct {
	ID         uuid.UUID      `json:"id"`
	FileName   string         `json:"fileName"`
	Status     ReportStatus   `json:"status"`
	AnalyzedAt string         `json:"analyzedAt,omitempty"`
	Summary    *ReportSummary `json:"summary,omitempty"`
}

// ReportListDTO is the envelope for GET /reports
type ReportListDTO struct {
	Count   int                `json:"count"`
	Results []ReportSummaryDTO `json:"results"`
}
