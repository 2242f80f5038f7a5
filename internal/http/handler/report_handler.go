package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/inletdocs/pdf-insight-api/internal/mapper"
	"github.com/inletdocs/pdf-insight-api/internal/pipeline"
	"github.com/inletdocs/pdf-insight-api/internal/repository"
	"github.com/inletdocs/pdf-insight-api/internal/storage"
	"go.uber.org/zap"
)

const defaultListLimit = 10

type ReportHandler struct {
	reports  *repository.ReportRepository
	pipeline *pipeline.Pipeline
	store    storage.Storage
	logger   *zap.Logger
}

func NewReportHandler(
	reports *repository.ReportRepository,
	pl *pipeline.Pipeline,
	store storage.Storage,
	logger *zap.Logger,
) *ReportHandler {
	return &ReportHandler{
		reports:  reports,
		pipeline: pl,
		store:    store,
		logger:   logger,
	}
}

type listQuery struct {
	Limit int `validate:"gte=1,lte=100"`
}

// @Summary List recent analysis reports
// @Tags Reports
// @Produce json
// @Param limit query int false "Maximum number of reports to return (1-100, default 10)"
// @Success 200 {object} domain.ReportListDTO
// @Router /reports [get]
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	q := listQuery{Limit: defaultListLimit}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid limit: must be an integer")
			return
		}
		q.Limit = limit
	}

	if err := validate.Struct(&q); err != nil {
		respondValidationError(w, err)
		return
	}

	reports, err := h.reports.ListRecent(r.Context(), q.Limit)
	if err != nil {
		h.logger.Error("failed to list reports", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list reports")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToReportListDTO(reports))
}

// @Summary Get an analysis report
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} domain.ReportDTO
// @Router /reports/{id} [get]
func (h *ReportHandler) GetByID(w http.ResponseWriter, r *http.Request) {
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

	respondJSON(w, http.StatusOK, mapper.ToReportDTO(report))
}

// @Summary Re-run analysis for a report
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 202 {object} domain.ReportDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /reports/{id}/reanalyze [post]
func (h *ReportHandler) Reanalyze(w http.ResponseWriter, r *http.Request) {
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

	if err := h.pipeline.Requeue(r.Context(), report); err != nil {
		if errors.Is(err, pipeline.ErrQueueFull) {
			respondWithError(w, http.StatusServiceUnavailable, "Analysis queue is full, try again later")
			return
		}
		h.logger.Error("failed to requeue report", zap.Error(err), zap.String("report_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to queue report for analysis")
		return
	}

	respondJSON(w, http.StatusAccepted, mapper.ToReportDTO(report))
}

// @Summary Delete a report and its stored document
// @Tags Reports
// @Param id path string true "Report ID"
// @Success 204
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /reports/{id} [delete]
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	// Remove the stored document first so the scan job cannot re-enqueue it
	if err := h.store.Delete(r.Context(), report.BlobPath); err != nil {
		h.logger.Warn("failed to delete stored document",
			zap.Error(err),
			zap.String("blob_path", report.BlobPath),
		)
	}

	if err := h.reports.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete report", zap.Error(err), zap.String("report_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete report")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
