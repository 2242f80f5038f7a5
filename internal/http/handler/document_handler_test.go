package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/inletdocs/pdf-insight-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestDocumentHandler_Upload(t *testing.T) {
	f := setupHandlers(t)

	body, contentType := multipartBody(t, "file", "invoice.pdf", []byte("%PDF-1.7\nsome pdf bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var dto domain.ReportDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "invoice.pdf", dto.FileName)
	assert.Equal(t, domain.ReportStatusPending, dto.Status)
	assert.Equal(t, "/api/v1/reports/"+dto.ID.String(), rec.Header().Get("Location"))

	// The document landed in storage
	reader, err := f.store.Download(context.Background(), dto.BlobPath)
	require.NoError(t, err)
	defer reader.Close()
	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7\nsome pdf bytes", string(content))
}

func TestDocumentHandler_Upload_RejectsNonPDF(t *testing.T) {
	f := setupHandlers(t)

	body, contentType := multipartBody(t, "file", "notes.txt", []byte("plain text, not a pdf"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported_media_type")
}

func TestDocumentHandler_Upload_RejectsOversizeFile(t *testing.T) {
	f := setupHandlers(t)

	// One byte over the fixture's 10MB limit
	oversize := append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte("a"), 10*1024*1024)...)
	body, contentType := multipartBody(t, "file", "huge.pdf", oversize)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "maximum size is 10MB")
}

func TestDocumentHandler_Upload_MalformedMultipartBody(t *testing.T) {
	f := setupHandlers(t)

	// Opens a part but never closes the boundary
	truncated := "--xyz\r\nContent-Disposition: form-data; name=\"file\"; filename=\"a.pdf\"\r\n\r\n%PDF-1.7 cut off"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", strings.NewReader(truncated))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentHandler_Upload_MissingFileField(t *testing.T) {
	f := setupHandlers(t)

	body, contentType := multipartBody(t, "document", "invoice.pdf", []byte("%PDF-1.7"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentHandler_Upload_Deduplicates(t *testing.T) {
	f := setupHandlers(t)

	upload := func() *httptest.ResponseRecorder {
		body, contentType := multipartBody(t, "file", "same.pdf", []byte("%PDF-1.7\ncontent"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		return rec
	}

	first := upload()
	require.Equal(t, http.StatusAccepted, first.Code)
	second := upload()
	require.Equal(t, http.StatusAccepted, second.Code)

	var a, b domain.ReportDTO
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))

	// Same blob path resolves to the same report
	assert.Equal(t, a.ID, b.ID)
}

func TestDocumentHandler_Download(t *testing.T) {
	f := setupHandlers(t)
	ctx := context.Background()

	blobPath, _, err := f.store.Upload(ctx, "stored.pdf", "application/pdf", strings.NewReader("stored bytes"))
	require.NoError(t, err)

	report := &domain.Report{
		FileName:    "stored.pdf",
		BlobPath:    blobPath,
		Status:      domain.ReportStatusCompleted,
		ContentType: "application/pdf",
	}
	require.NoError(t, f.reports.Create(ctx, report))

	rec := f.do(http.MethodGet, "/api/v1/documents/"+report.ID.String()+"/download", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "stored.pdf")
	assert.Equal(t, "stored bytes", rec.Body.String())
}

func TestDocumentHandler_Download_ReportNotFound(t *testing.T) {
	f := setupHandlers(t)

	rec := f.do(http.MethodGet, "/api/v1/documents/"+uuid.NewString()+"/download", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDocumentHandler_Download_BlobMissing(t *testing.T) {
	f := setupHandlers(t)
	report := f.createReport(t, "vanished.pdf", domain.ReportStatusCompleted)

	rec := f.do(http.MethodGet, "/api/v1/documents/"+report.ID.String()+"/download", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
