package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/inletdocs/pdf-insight-api/internal/domain"
	"go.uber.org/zap"
)

// RetentionJobName is the name of the report retention job
const RetentionJobName = "report_retention"

const retentionTimeout = 5 * time.Minute

// ReportPurger lists and removes finished reports.
type ReportPurger interface {
	ListAnalyzedBefore(ctx context.Context, cutoff time.Time) ([]domain.Report, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentRemover deletes a stored document.
type DocumentRemover interface {
	Delete(ctx context.Context, blobPath string) error
}

// RetentionJob purges completed and failed reports older than the configured
// age, document first and row second; a blob that outlives its report row
// would be re-enqueued by the next container scan.
type RetentionJob struct {
	reports ReportPurger
	store   DocumentRemover
	maxAge  time.Duration
	logger  *zap.Logger
}

// NewRetentionJob creates a new retention job.
func NewRetentionJob(reports ReportPurger, store DocumentRemover, maxAge time.Duration, logger *zap.Logger) *RetentionJob {
	return &RetentionJob{
		reports: reports,
		store:   store,
		maxAge:  maxAge,
		logger:  logger,
	}
}

// Run executes one purge pass. Called by the scheduler.
func (j *RetentionJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), retentionTimeout)
	defer cancel()

	cutoff := time.Now().UTC().Add(-j.maxAge)

	expired, err := j.reports.ListAnalyzedBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("report retention failed", zap.Error(err))
		return
	}

	var removed int
	for i := range expired {
		r := &expired[i]

		if err := j.store.Delete(ctx, r.BlobPath); err != nil {
			// Keep the row so the scan cannot rediscover the blob; this
			// report is retried on the next pass
			j.logger.Warn("retention failed to delete document, keeping report",
				zap.String("blob_path", r.BlobPath),
				zap.Error(err))
			continue
		}

		if err := j.reports.Delete(ctx, r.ID); err != nil {
			j.logger.Error("retention failed to delete report",
				zap.String("report_id", r.ID.String()),
				zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		j.logger.Info("purged old reports",
			zap.Int("removed", removed),
			zap.Time("cutoff", cutoff))
	}
}

// RegisterRetentionJob adds the retention job to the scheduler.
func RegisterRetentionJob(
	s *Scheduler,
	reports ReportPurger,
	store DocumentRemover,
	maxAge time.Duration,
	logger *zap.Logger,
	cronExpr string,
) error {
	job := NewRetentionJob(reports, store, maxAge, logger)
	return s.AddJob(RetentionJobName, cronExpr, job.Run)
}
