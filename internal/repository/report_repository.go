package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/inletdocs/pdf-insight-api/internal/domain"
	"gorm.io/gorm"
)

// ErrReportNotFound is returned when a report does not exist
var ErrReportNotFound = errors.New("report not found")

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *ReportRepository) Update(ctx context.Context, report *domain.Report) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	var report domain.Report
	err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

// GetByBlobPath returns the report for a blob, if one exists
func (r *ReportRepository) GetByBlobPath(ctx context.Context, blobPath string) (*domain.Report, error) {
	var report domain.Report
	err := r.db.WithContext(ctx).First(&report, "blob_path = ?", blobPath).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

// ExistsByBlobPath reports whether any report references the blob.
// The container scan uses this to skip documents it has already picked up.
func (r *ReportRepository) ExistsByBlobPath(ctx context.Context, blobPath string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Report{}).
		Where("blob_path = ?", blobPath).
		Count(&count).Error
	return count > 0, err
}

// ListRecent returns the most recently analyzed reports first.
// Reports that never completed sort last.
func (r *ReportRepository) ListRecent(ctx context.Context, limit int) ([]domain.Report, error) {
	var reports []domain.Report
	err := r.db.WithContext(ctx).
		Order("analyzed_at DESC NULLS LAST").
		Order("created_at DESC").
		Limit(limit).
		Find(&reports).Error
	return reports, err
}

// ListByStatus returns reports in the given status, oldest first
func (r *ReportRepository) ListByStatus(ctx context.Context, status domain.ReportStatus, limit int) ([]domain.Report, error) {
	var reports []domain.Report
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Find(&reports).Error
	return reports, err
}

// CountByStatus returns the number of reports per status
func (r *ReportRepository) CountByStatus(ctx context.Context) (map[domain.ReportStatus]int64, error) {
	type row struct {
		Status domain.ReportStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&domain.Report{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.ReportStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *ReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Report{}, "id = ?", id).Error
}

// ListAnalyzedBefore returns completed and failed reports analyzed before
// the cutoff. Pending and running reports are never returned.
func (r *ReportRepository) ListAnalyzedBefore(ctx context.Context, cutoff time.Time) ([]domain.Report, error) {
	var reports []domain.Report
	err := r.db.WithContext(ctx).
		Where("status IN ?", []domain.ReportStatus{domain.ReportStatusCompleted, domain.ReportStatusFailed}).
		Where("analyzed_at < ?", cutoff).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}
