package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/inletdocs/pdf-insight-api/internal/analysis"
	"github.com/inletdocs/pdf-insight-api/internal/mapper"
	"github.com/inletdocs/pdf-insight-api/internal/pipeline"
	"github.com/inletdocs/pdf-insight-api/internal/repository"
	"github.com/inletdocs/pdf-insight-api/internal/storage"
	"go.uber.org/zap"
)

// DocumentHandler accepts document uploads and serves stored documents.
// Uploads are queued for analysis; results are available on the reports
// endpoints once the pipeline has processed the document.
type DocumentHandler struct {
	store       storage.Storage
	reports     *repository.ReportRepository
	pipeline    *pipeline.Pipeline
	maxUploadMB int64
	logger      *zap.Logger
}

func NewDocumentHandler(
	store storage.Storage,
	reports *repository.ReportRepository,
	pl *pipeline.Pipeline,
	maxUploadMB int64,
	logger *zap.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		store:       store,
		reports:     reports,
		pipeline:    pl,
		maxUploadMB: maxUploadMB,
		logger:      logger,
	}
}

// @Summary Upload a PDF document for analysis
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document to analyze"
// @Success 202 {object} domain.ReportDTO
// @Router /documents [post]
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Limit request size
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(h.maxUploadMB * 1024 * 1024); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large: maximum size is %dMB", h.maxUploadMB))
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid multipart request body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed to read uploaded file", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	if !analysis.IsPDF(data) {
		respondWithError(w, http.StatusUnsupportedMediaType,
			fmt.Sprintf("Unsupported document format %q: only PDF is accepted", analysis.DetectFormat(data)))
		return
	}

	blobPath, size, err := h.store.Upload(r.Context(), header.Filename, "application/pdf", bytes.NewReader(data))
	if err != nil {
		h.logger.Error("failed to store document", zap.Error(err), zap.String("file_name", header.Filename))
		respondWithError(w, http.StatusInternalServerError, "Failed to store document")
		return
	}

	report, err := h.pipeline.EnqueueBlob(r.Context(), blobPath)
	if err != nil {
		if errors.Is(err, pipeline.ErrQueueFull) {
			respondWithError(w, http.StatusServiceUnavailable, "Analysis queue is full, try again later")
			return
		}
		h.logger.Error("failed to enqueue document", zap.Error(err), zap.String("blob_path", blobPath))
		respondWithError(w, http.StatusInternalServerError, "Failed to queue document for analysis")
		return
	}

	// Record upload metadata the container scan cannot know
	report.ContentType = "application/pdf"
	report.SizeBytes = size
	if err := h.reports.Update(r.Context(), report); err != nil {
		h.logger.Warn("failed to record upload metadata", zap.Error(err), zap.String("report_id", report.ID.String()))
	}

	w.Header().Set("Location", "/api/v1/reports/"+report.ID.String())
	respondJSON(w, http.StatusAccepted, mapper.ToReportDTO(report))
}

// @Summary Download the stored document for a report
// @Tags Documents
// @Produce application/pdf
// @Param id path string true "Report ID"
// @Success 200
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid report ID: must be a valid UUID")
		return
	}

	report, err := h.reports.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			respondWithError(w, http.StatusNotFound, "Report not found")
			return
		}
		h.logger.Error("failed to get report", zap.Error(err), zap.String("report_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to get report")
		return
	}

	reader, err := h.store.Download(r.Context(), report.BlobPath)
	if err != nil {
		h.logger.Error("failed to download document",
			zap.Error(err),
			zap.String("blob_path", report.BlobPath),
		)
		respondWithError(w, http.StatusNotFound, "Document not found in storage")
		return
	}
	defer reader.Close()

	contentType := report.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Disposition", "attachment; filename=\""+report.FileName+"\"")
	w.Header().Set("Content-Type", contentType)

	_, _ = io.Copy(w, reader)
}
