package jobs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/inletdocs/pdf-insight-api/internal/domain"
	"github.com/inletdocs/pdf-insight-api/internal/pipeline"
	"github.com/inletdocs/pdf-insight-api/internal/storage"
	"go.uber.org/zap"
)

// ScanJobName is the name of the container scan job
const ScanJobName = "container_scan"

// scanTimeout bounds one scan pass, not the analyses it enqueues
const scanTimeout = 2 * time.Minute

// DocumentLister lists the documents currently in storage.
type DocumentLister interface {
	List(ctx context.Context) ([]storage.BlobInfo, error)
}

// ReportIndex answers whether a document has been picked up already.
type ReportIndex interface {
	ExistsByBlobPath(ctx context.Context, blobPath string) (bool, error)
}

// Enqueuer submits a document for analysis.
type Enqueuer interface {
	EnqueueBlob(ctx context.Context, blobPath string) (*domain.Report, error)
}

// ScanJob watches the document container. It stands in for a storage event
// trigger: each pass lists the container and enqueues every document that
// has no report yet.
type ScanJob struct {
	store   DocumentLister
	reports ReportIndex
	queue   Enqueuer
	logger  *zap.Logger
}

// NewScanJob creates a new container scan job.
func NewScanJob(store DocumentLister, reports ReportIndex, queue Enqueuer, logger *zap.Logger) *ScanJob {
	return &ScanJob{
		store:   store,
		reports: reports,
		queue:   queue,
		logger:  logger,
	}
}

// Run executes one scan pass. Called by the scheduler.
func (j *ScanJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	blobs, err := j.store.List(ctx)
	if err != nil {
		j.logger.Error("container scan failed to list documents", zap.Error(err))
		return
	}

	var enqueued int
	for _, b := range blobs {
		if !looksLikePDF(b.Path) {
			continue
		}

		exists, err := j.reports.ExistsByBlobPath(ctx, b.Path)
		if err != nil {
			j.logger.Error("container scan failed to check report",
				zap.String("blob_path", b.Path),
				zap.Error(err))
			continue
		}
		if exists {
			continue
		}

		if _, err := j.queue.EnqueueBlob(ctx, b.Path); err != nil {
			if errors.Is(err, pipeline.ErrQueueFull) {
				j.logger.Warn("container scan stopped early, analysis queue full",
					zap.Int("enqueued", enqueued))
				return
			}
			j.logger.Error("container scan failed to enqueue document",
				zap.String("blob_path", b.Path),
				zap.Error(err))
			continue
		}

		j.logger.Info("new document detected",
			zap.String("blob_path", b.Path),
			zap.Int64("size_bytes", b.Size))
		enqueued++
	}

	if enqueued > 0 {
		j.logger.Info("container scan completed",
			zap.Int("documents_found", len(blobs)),
			zap.Int("enqueued", enqueued))
	}
}

// looksLikePDF filters on filename; content sniffing happens in the pipeline
func looksLikePDF(blobPath string) bool {
	return strings.HasSuffix(strings.ToLower(blobPath), ".pdf")
}

// RegisterScanJob adds the container scan to the scheduler.
func RegisterScanJob(
	s *Scheduler,
	store DocumentLister,
	reports ReportIndex,
	queue Enqueuer,
	logger *zap.Logger,
	cronExpr string,
) error {
	job := NewScanJob(store, reports, queue, logger)
	return s.AddJob(ScanJobName, cronExpr, job.Run)
}
