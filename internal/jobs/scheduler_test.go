package jobs_test

import (
	"testing"

	"github.com/inletdocs/pdf-insight-api/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduler_AddJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	err := s.AddJob("scan", "*/15 * * * * *", func() {})
	require.NoError(t, err)
	assert.Contains(t, s.GetJobNames(), "scan")
}

func TestScheduler_AddJob_DuplicateName(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("scan", "*/15 * * * * *", func() {}))
	err := s.AddJob("scan", "*/30 * * * * *", func() {})
	assert.Error(t, err)
}

func TestScheduler_AddJob_InvalidCron(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	err := s.AddJob("bad", "not a cron expression", func() {})
	assert.Error(t, err)
	assert.Empty(t, s.GetJobNames())
}

func TestScheduler_RemoveJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("scan", "*/15 * * * * *", func() {}))
	require.NoError(t, s.RemoveJob("scan"))
	assert.Empty(t, s.GetJobNames())

	assert.Error(t, s.RemoveJob("scan"))
}
