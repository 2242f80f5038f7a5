package pipeline_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/inletdocs/pdf-insight-api/internal/config"
	"github.com/inletdocs/pdf-insight-api/internal/domain"
	"github.com/inletdocs/pdf-insight-api/internal/metrics"
	"github.com/inletdocs/pdf-insight-api/internal/pipeline"
	"github.com/inletdocs/pdf-insight-api/internal/repository"
	"github.com/inletdocs/pdf-insight-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type pipelineFixture struct {
	store    *storage.LocalStorage
	reports  *repository.ReportRepository
	pipeline *pipeline.Pipeline
}

func setupPipeline(t *testing.T, cfg *config.PipelineConfig) *pipelineFixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Report{}))

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	reports := repository.NewReportRepository(db)
	pl := pipeline.New(store, reports, metrics.New(), cfg, zap.NewNop())

	return &pipelineFixture{store: store, reports: reports, pipeline: pl}
}

func defaultPipelineConfig() *config.PipelineConfig {
	return &config.PipelineConfig{Workers: 1, QueueSize: 8, DocumentTimeout: 30}
}

func TestPipeline_ProcessesMalformedDocument(t *testing.T) {
	f := setupPipeline(t, defaultPipelineConfig())
	ctx := context.Background()

	// Not a parseable PDF; every analyzer must degrade instead of failing
	path, _, err := f.store.Upload(ctx, "broken.pdf", "application/pdf", strings.NewReader("not really a pdf"))
	require.NoError(t, err)

	f.pipeline.Start()
	defer stopPipeline(t, f.pipeline)

	report, err := f.pipeline.EnqueueBlob(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusPending, report.Status)

	assert.Eventually(t, func() bool {
		current, err := f.reports.GetByID(ctx, report.ID)
		return err == nil && current.Status == domain.ReportStatusCompleted
	}, 5*time.Second, 20*time.Millisecond)

	final, err := f.reports.GetByID(ctx, report.ID)
	require.NoError(t, err)

	assert.Empty(t, final.Error)
	assert.NotNil(t, final.AnalyzedAt)
	assert.Contains(t, final.Summary, `"hasText":false`)
	assert.Contains(t, final.TextAnalysis, "error")
	assert.Contains(t, final.StatisticsAnalysis, "error")
	assert.Equal(t, int64(len("not really a pdf")), final.SizeBytes)
}

func TestPipeline_MissingBlobFailsReport(t *testing.T) {
	f := setupPipeline(t, defaultPipelineConfig())
	ctx := context.Background()

	f.pipeline.Start()
	defer stopPipeline(t, f.pipeline)

	report, err := f.pipeline.EnqueueBlob(ctx, "never-uploaded.pdf")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		current, err := f.reports.GetByID(ctx, report.ID)
		return err == nil && current.Status == domain.ReportStatusFailed
	}, 5*time.Second, 20*time.Millisecond)

	final, err := f.reports.GetByID(ctx, report.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, final.Error)
	assert.NotNil(t, final.AnalyzedAt)
}

func TestPipeline_EnqueueBlobDeduplicates(t *testing.T) {
	// Workers never started, so queued tasks stay queued
	f := setupPipeline(t, &config.PipelineConfig{Workers: 1, QueueSize: 1, DocumentTimeout: 30})
	ctx := context.Background()

	first, err := f.pipeline.EnqueueBlob(ctx, "doc.pdf")
	require.NoError(t, err)

	// A pending report is returned as-is, no second queue slot is taken
	second, err := f.pipeline.EnqueueBlob(ctx, "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// The single queue slot is still occupied
	_, err = f.pipeline.EnqueueBlob(ctx, "other.pdf")
	assert.ErrorIs(t, err, pipeline.ErrQueueFull)
}

func TestPipeline_QueueFullRollsBackReport(t *testing.T) {
	// Workers never started, so queued tasks stay queued
	f := setupPipeline(t, &config.PipelineConfig{Workers: 1, QueueSize: 1, DocumentTimeout: 30})
	ctx := context.Background()

	_, err := f.pipeline.EnqueueBlob(ctx, "doc1.pdf")
	require.NoError(t, err)

	_, err = f.pipeline.EnqueueBlob(ctx, "doc2.pdf")
	require.ErrorIs(t, err, pipeline.ErrQueueFull)

	// No report row survives the failed enqueue; the container scan must
	// still see doc2.pdf as new on its next pass
	_, err = f.reports.GetByBlobPath(ctx, "doc2.pdf")
	assert.ErrorIs(t, err, repository.ErrReportNotFound)
}

func TestPipeline_PendingReportWithoutSlotIsRequeued(t *testing.T) {
	f := setupPipeline(t, &config.PipelineConfig{Workers: 1, QueueSize: 2, DocumentTimeout: 30})
	ctx := context.Background()

	// A pending row with no queue slot, as left behind by an interrupted
	// process before recovery ran
	stranded := &domain.Report{FileName: "stuck.pdf", BlobPath: "stuck.pdf", Status: domain.ReportStatusPending}
	require.NoError(t, f.reports.Create(ctx, stranded))

	report, err := f.pipeline.EnqueueBlob(ctx, "stuck.pdf")
	require.NoError(t, err)
	assert.Equal(t, stranded.ID, report.ID)

	// It now holds a slot; a repeat call does not take a second one
	_, err = f.pipeline.EnqueueBlob(ctx, "stuck.pdf")
	require.NoError(t, err)
	_, err = f.pipeline.EnqueueBlob(ctx, "other.pdf")
	require.NoError(t, err)
	_, err = f.pipeline.EnqueueBlob(ctx, "third.pdf")
	assert.ErrorIs(t, err, pipeline.ErrQueueFull)
}

func TestPipeline_QueueFullRetryEventuallySucceeds(t *testing.T) {
	f := setupPipeline(t, &config.PipelineConfig{Workers: 1, QueueSize: 1, DocumentTimeout: 30})
	ctx := context.Background()

	pathA, _, err := f.store.Upload(ctx, "a.pdf", "application/pdf", strings.NewReader("junk a"))
	require.NoError(t, err)
	pathB, _, err := f.store.Upload(ctx, "b.pdf", "application/pdf", strings.NewReader("junk b"))
	require.NoError(t, err)

	f.pipeline.Start()
	defer stopPipeline(t, f.pipeline)

	_, err = f.pipeline.EnqueueBlob(ctx, pathA)
	require.NoError(t, err)

	// While a.pdf occupies the queue the enqueue may fail; retrying must
	// eventually land b.pdf instead of stranding it as pending forever
	var reportB *domain.Report
	require.Eventually(t, func() bool {
		r, err := f.pipeline.EnqueueBlob(ctx, pathB)
		if err != nil {
			return false
		}
		reportB = r
		return true
	}, 5*time.Second, 20*time.Millisecond)

	assert.Eventually(t, func() bool {
		current, err := f.reports.GetByID(ctx, reportB.ID)
		return err == nil && current.Status == domain.ReportStatusCompleted
	}, 5*time.Second, 20*time.Millisecond)
}

func TestPipeline_EnqueueAfterStop(t *testing.T) {
	f := setupPipeline(t, defaultPipelineConfig())
	ctx := context.Background()

	f.pipeline.Start()
	stopPipeline(t, f.pipeline)

	_, err := f.pipeline.EnqueueBlob(ctx, "late.pdf")
	assert.ErrorIs(t, err, pipeline.ErrStopped)
}

func TestPipeline_Recover(t *testing.T) {
	f := setupPipeline(t, defaultPipelineConfig())
	ctx := context.Background()

	// Simulate reports stranded by a previous shutdown
	interrupted := &domain.Report{
		FileName: "stranded.pdf",
		BlobPath: "stranded.pdf",
		Status:   domain.ReportStatusRunning,
	}
	require.NoError(t, f.reports.Create(ctx, interrupted))

	require.NoError(t, f.pipeline.Recover(ctx))

	current, err := f.reports.GetByID(ctx, interrupted.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusPending, current.Status)
}

func stopPipeline(t *testing.T, pl *pipeline.Pipeline) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, pl.Stop(ctx))
}
