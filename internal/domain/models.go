package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportStatus represents the lifecycle state of an analysis report
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusRunning   ReportStatus = "running"
	ReportStatusCompleted ReportStatus = "completed"
	ReportStatusFailed    ReportStatus = "failed"
)

// Report is the persisted result of analyzing one document.
// The analysis payloads are stored as JSON strings; the summary row columns
// exist so listings don't have to decode the full payloads.
type Report struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	FileName    string       `gorm:"type:varchar(500);not null;index"`
	BlobPath    string       `gorm:"type:varchar(1000);not null;uniqueIndex;column:blob_path"`
	Status      ReportStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	ContentType string       `gorm:"type:varchar(100);column:content_type"`
	SizeBytes   int64        `gorm:"column:size_bytes"`

	// AnalyzedAt is set when the pipeline completes; listings sort on it
	AnalyzedAt *time.Time `gorm:"index;column:analyzed_at"`

	// Error records a pipeline-level failure (e.g. the blob could not be read).
	// Per-analysis failures live inside the analysis payloads instead.
	Error string `gorm:"type:text"`

	// JSON-encoded payloads
	Summary            string `gorm:"type:text"`
	TextAnalysis       string `gorm:"type:text;column:text_analysis"`
	MetadataAnalysis   string `gorm:"type:text;column:metadata_analysis"`
	StatisticsAnalysis string `gorm:"type:text;column:statistics_analysis"`
	SensitiveAnalysis  string `gorm:"type:text;column:sensitive_analysis"`
}

// BeforeCreate assigns an ID when one wasn't set by the caller
func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TextResult is the outcome of text extraction
type TextResult struct {
	HasText       bool   `json:"hasText"`
	ExtractedText string `json:"extractedText"`
	Error         string `json:"error,omitempty"`
}

// MetadataResult is the outcome of metadata extraction.
// Dates are RFC 3339 strings, empty when absent from the document.
type MetadataResult struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	Creator      string `json:"creator"`
	Producer     string `json:"producer"`
	CreationDate string `json:"creationDate,omitempty"`
	ModDate      string `json:"modDate,omitempty"`
	Error        string `json:"error,omitempty"`
}

// StatisticsResult is the outcome of document statistics analysis
type StatisticsResult struct {
	PageCount          int     `json:"pageCount"`
	WordCount          int     `json:"wordCount"`
	AvgWordsPerPage    float64 `json:"avgWordsPerPage"`
	ReadingTimeMinutes float64 `json:"estimatedReadingTimeMin"`
	Error              string  `json:"error,omitempty"`
}

// SensitiveDataResult lists potentially sensitive strings found in the text
type SensitiveDataResult struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
	URLs   []string `json:"urls"`
	Dates  []string `json:"dates"`
	Error  string   `json:"error,omitempty"`
}

// ReportSummary is the condensed view stored alongside the full analyses
type ReportSummary struct {
	Format  string `json:"format"`
	HasText bool   `json:"hasText"`
}

// AnalysisSet bundles the four analysis results for one document
type AnalysisSet struct {
	Text       TextResult          `json:"text"`
	Metadata   MetadataResult      `json:"metadata"`
	Statistics StatisticsResult    `json:"statistics"`
	Sensitive  SensitiveDataResult `json:"sensitiveData"`
}
