// Package pipeline runs the document analysis workflow: fetch the document,
// fan out the four analyses in parallel, fan their results into a report,
// and persist it. A bounded worker pool bounds concurrency.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inletdocs/pdf-insight-api/internal/analysis"
	"github.com/inletdocs/pdf-insight-api/internal/config"
	"github.com/inletdocs/pdf-insight-api/internal/domain"
	"github.com/inletdocs/pdf-insight-api/internal/logger"
	"github.com/inletdocs/pdf-insight-api/internal/metrics"
	"github.com/inletdocs/pdf-insight-api/internal/repository"
	"github.com/inletdocs/pdf-insight-api/internal/storage"
	"go.uber.org/zap"
)

// ErrQueueFull is returned when the pending-document queue is at capacity
var ErrQueueFull = errors.New("analysis queue is full")

// ErrStopped is returned when enqueueing after the pipeline shut down
var ErrStopped = errors.New("pipeline is stopped")

type task struct {
	reportID uuid.UUID
	blobPath string
}

// Pipeline coordinates the analysis workers
type Pipeline struct {
	store   storage.Storage
	reports *repository.ReportRepository
	metrics *metrics.Metrics
	logger  *zap.Logger

	workers int
	timeout time.Duration

	mu      sync.Mutex
	queue   chan task
	queued  map[string]struct{}
	stopped bool
	wg      sync.WaitGroup
}

// New creates a pipeline; call Start to launch the workers
func New(
	store storage.Storage,
	reports *repository.ReportRepository,
	m *metrics.Metrics,
	cfg *config.PipelineConfig,
	logger *zap.Logger,
) *Pipeline {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	queueSize := cfg.QueueSize
	if queueSize < 1 {
		queueSize = 1
	}

	return &Pipeline{
		store:   store,
		reports: reports,
		metrics: m,
		logger:  logger,
		workers: workers,
		timeout: cfg.DocumentTimeoutDuration(),
		queue:   make(chan task, queueSize),
		queued:  make(map[string]struct{}, queueSize),
	}
}

// Start launches the worker pool
func (p *Pipeline) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.logger.Info("analysis pipeline started",
		zap.Int("workers", p.workers),
		zap.Int("queue_size", cap(p.queue)),
	)
}

// Stop closes the queue and waits for in-flight documents to finish,
// up to the context deadline.
func (p *Pipeline) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		close(p.queue)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("analysis pipeline stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("pipeline shutdown timed out: %w", ctx.Err())
	}
}

// EnqueueBlob ensures a report row exists for the blob and queues it for
// analysis. An existing report is reset and re-analyzed; a report whose blob
// already holds a queue slot or is being processed is returned as-is.
func (p *Pipeline) EnqueueBlob(ctx context.Context, blobPath string) (*domain.Report, error) {
	report, err := p.reports.GetByBlobPath(ctx, blobPath)
	switch {
	case err == nil:
		switch report.Status {
		case domain.ReportStatusRunning:
			return report, nil
		case domain.ReportStatusPending:
			// A pending report without a queue slot is left over from an
			// enqueue that lost to a full queue; give it its slot now.
			if p.isQueued(blobPath) {
				return report, nil
			}
		default:
			report.Status = domain.ReportStatusPending
			report.Error = ""
			if err := p.reports.Update(ctx, report); err != nil {
				return nil, fmt.Errorf("failed to reset report: %w", err)
			}
		}
		if err := p.enqueue(task{reportID: report.ID, blobPath: blobPath}); err != nil {
			return nil, err
		}
		return report, nil
	case errors.Is(err, repository.ErrReportNotFound):
		report = &domain.Report{
			FileName: path.Base(blobPath),
			BlobPath: blobPath,
			Status:   domain.ReportStatusPending,
		}
		if err := p.reports.Create(ctx, report); err != nil {
			return nil, fmt.Errorf("failed to create report: %w", err)
		}
		if err := p.enqueue(task{reportID: report.ID, blobPath: blobPath}); err != nil {
			// The fresh row must not outlive the failed enqueue or the
			// container scan would skip the blob on every later pass.
			if delErr := p.reports.Delete(ctx, report.ID); delErr != nil {
				p.logger.Error("failed to roll back report after enqueue failure",
					zap.String("blob_path", blobPath),
					zap.Error(delErr))
			}
			return nil, err
		}
		return report, nil
	default:
		return nil, err
	}
}

// Requeue puts an existing report back on the queue
func (p *Pipeline) Requeue(ctx context.Context, report *domain.Report) error {
	report.Status = domain.ReportStatusPending
	report.Error = ""
	if err := p.reports.Update(ctx, report); err != nil {
		return fmt.Errorf("failed to reset report: %w", err)
	}
	return p.enqueue(task{reportID: report.ID, blobPath: report.BlobPath})
}

// Recover requeues reports that were interrupted by a previous shutdown
func (p *Pipeline) Recover(ctx context.Context) error {
	for _, status := range []domain.ReportStatus{domain.ReportStatusRunning, domain.ReportStatusPending} {
		reports, err := p.reports.ListByStatus(ctx, status, cap(p.queue))
		if err != nil {
			return fmt.Errorf("failed to list %s reports: %w", status, err)
		}
		for i := range reports {
			if err := p.Requeue(ctx, &reports[i]); err != nil {
				if errors.Is(err, ErrQueueFull) {
					p.logger.Warn("recovery stopped early, queue full",
						zap.Int("requeued", i),
					)
					return nil
				}
				return err
			}
		}
		if len(reports) > 0 {
			p.logger.Info("requeued interrupted reports",
				zap.String("status", string(status)),
				zap.Int("count", len(reports)),
			)
		}
	}
	return nil
}

func (p *Pipeline) enqueue(t task) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return ErrStopped
	}
	if _, ok := p.queued[t.blobPath]; ok {
		return nil
	}

	select {
	case p.queue <- t:
		p.queued[t.blobPath] = struct{}{}
		p.metrics.QueueDepth.Set(float64(len(p.queue)))
		return nil
	default:
		return ErrQueueFull
	}
}

// isQueued reports whether the blob currently holds a queue slot
func (p *Pipeline) isQueued(blobPath string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.queued[blobPath]
	return ok
}

func (p *Pipeline) releaseSlot(blobPath string) {
	p.mu.Lock()
	delete(p.queued, blobPath)
	p.mu.Unlock()
}

func (p *Pipeline) worker(id int) {
	defer p.wg.Done()

	for t := range p.queue {
		p.metrics.QueueDepth.Set(float64(len(p.queue)))

		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		p.process(ctx, t)
		cancel()
	}
}

// process runs the full analysis workflow for one queued document
func (p *Pipeline) process(ctx context.Context, t task) {
	start := time.Now()
	log := logger.WithDocument(p.logger, t.blobPath, t.reportID.String())

	report, err := p.reports.GetByID(ctx, t.reportID)
	if err != nil {
		log.Error("queued report disappeared", zap.Error(err))
		p.releaseSlot(t.blobPath)
		return
	}

	report.Status = domain.ReportStatusRunning
	err = p.reports.Update(ctx, report)
	// The slot is released only once the row says running, so a concurrent
	// enqueue for the same blob cannot slip in a duplicate task.
	p.releaseSlot(t.blobPath)
	if err != nil {
		log.Error("failed to mark report running", zap.Error(err))
		return
	}

	data, err := p.fetch(ctx, t.blobPath)
	if err != nil {
		log.Error("failed to fetch document", zap.Error(err))
		p.fail(ctx, report, fmt.Errorf("fetch document: %w", err))
		return
	}

	log.Info("analyzing document", zap.Int("size_bytes", len(data)))

	doc := &analysis.Document{Name: t.blobPath, Data: data}
	set := p.analyze(doc)

	now := time.Now().UTC()
	summary := domain.ReportSummary{
		Format:  analysis.DetectFormat(data),
		HasText: set.Text.HasText,
	}

	report.Status = domain.ReportStatusCompleted
	report.AnalyzedAt = &now
	report.SizeBytes = int64(len(data))
	report.ContentType = summary.Format
	report.Error = ""
	report.Summary = marshal(summary)
	report.TextAnalysis = marshal(set.Text)
	report.MetadataAnalysis = marshal(set.Metadata)
	report.StatisticsAnalysis = marshal(set.Statistics)
	report.SensitiveAnalysis = marshal(set.Sensitive)

	if err := p.reports.Update(ctx, report); err != nil {
		log.Error("failed to store report", zap.Error(err))
		p.metrics.DocumentsAnalyzed.WithLabelValues("store_error").Inc()
		return
	}

	duration := time.Since(start)
	p.metrics.DocumentsAnalyzed.WithLabelValues("completed").Inc()
	p.metrics.AnalysisDuration.Observe(duration.Seconds())

	log.Info("document analyzed",
		zap.Bool("has_text", set.Text.HasText),
		zap.Int("page_count", set.Statistics.PageCount),
		zap.Duration("duration", duration),
	)
}

// analyze fans out the four analyses and waits for all of them
func (p *Pipeline) analyze(doc *analysis.Document) domain.AnalysisSet {
	var set domain.AnalysisSet
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		set.Text = analysis.ExtractText(doc)
	}()
	go func() {
		defer wg.Done()
		set.Metadata = analysis.ExtractMetadata(doc)
	}()
	go func() {
		defer wg.Done()
		set.Statistics = analysis.AnalyzeStatistics(doc)
	}()
	go func() {
		defer wg.Done()
		set.Sensitive = analysis.DetectSensitiveData(doc)
	}()

	wg.Wait()
	return set
}

func (p *Pipeline) fetch(ctx context.Context, blobPath string) ([]byte, error) {
	reader, err := p.store.Download(ctx, blobPath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

func (p *Pipeline) fail(ctx context.Context, report *domain.Report, cause error) {
	now := time.Now().UTC()
	report.Status = domain.ReportStatusFailed
	report.AnalyzedAt = &now
	report.Error = cause.Error()

	if err := p.reports.Update(ctx, report); err != nil {
		p.logger.Error("failed to mark report failed",
			zap.String("report_id", report.ID.String()),
			zap.Error(err),
		)
	}
	p.metrics.DocumentsAnalyzed.WithLabelValues("failed").Inc()
}

func marshal(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
