package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/inletdocs/pdf-insight-api/internal/config"
	"github.com/inletdocs/pdf-insight-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupLocalStorage(t *testing.T) *storage.LocalStorage {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestLocalStorage_UploadAndDownload(t *testing.T) {
	store := setupLocalStorage(t)
	ctx := context.Background()

	path, size, err := store.Upload(ctx, "report.pdf", "application/pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", path)
	assert.Equal(t, int64(9), size)

	reader, err := store.Download(ctx, path)
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(content))
}

func TestLocalStorage_UploadKeepsOriginalName(t *testing.T) {
	store := setupLocalStorage(t)

	// Directory components are stripped, the basename is kept
	path, _, err := store.Upload(context.Background(), "some/dir/invoice.pdf", "application/pdf", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "invoice.pdf", path)
}

func TestLocalStorage_DownloadMissing(t *testing.T) {
	store := setupLocalStorage(t)

	_, err := store.Download(context.Background(), "missing.pdf")
	assert.Error(t, err)
}

func TestLocalStorage_Delete(t *testing.T) {
	store := setupLocalStorage(t)
	ctx := context.Background()

	path, _, err := store.Upload(ctx, "doomed.pdf", "application/pdf", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, path))

	_, err = store.Download(ctx, path)
	assert.Error(t, err)

	// Deleting a missing document is not an error
	assert.NoError(t, store.Delete(ctx, path))
}

func TestLocalStorage_List(t *testing.T) {
	store := setupLocalStorage(t)
	ctx := context.Background()

	_, _, err := store.Upload(ctx, "b.pdf", "application/pdf", strings.NewReader("bb"))
	require.NoError(t, err)
	_, _, err = store.Upload(ctx, "a.pdf", "application/pdf", strings.NewReader("a"))
	require.NoError(t, err)

	blobs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, blobs, 2)
	assert.Equal(t, "a.pdf", blobs[0].Path)
	assert.Equal(t, int64(1), blobs[0].Size)
	assert.Equal(t, "b.pdf", blobs[1].Path)
	assert.Equal(t, int64(2), blobs[1].Size)
}

func TestNewStorage_UnsupportedMode(t *testing.T) {
	_, err := storage.NewStorage(&config.StorageConfig{Mode: "ftp"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewStorage_AzureRequiresConnectionString(t *testing.T) {
	_, err := storage.NewStorage(&config.StorageConfig{Mode: "azure"}, zap.NewNop())
	assert.Error(t, err)
}
