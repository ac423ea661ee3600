package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"tabpulse/internal/dataprocessing"
	apierrors "tabpulse/internal/errors"
	"tabpulse/internal/exporter"
	"tabpulse/internal/services"
	apiv1 "tabpulse/pkg/contracts/api/v1"
	"tabpulse/pkg/contracts/domain"
)

// AnalysisServiceInterface is the service surface the handler depends on.
type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, fileName string, r io.Reader) (*domain.AnalysisReport, error)
	GetReport(ctx context.Context, id string) (*domain.AnalysisReport, error)
	ListReports(ctx context.Context) []domain.AnalysisSummary
	WriteCleanedCSV(ctx context.Context, id string, w io.Writer) error
}

// AnalysisHandler handles the analyses resource.
type AnalysisHandler struct {
	service        AnalysisServiceInterface
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(service AnalysisServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *AnalysisHandler {
	return &AnalysisHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "analysis_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the analyses routes.
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.CreateAnalysis)
	r.Get("/", h.ListAnalyses)

	r.Route("/{id}", func(r chi.Router) {
		r.Use(h.AnalysisCtx)
		r.Get("/", h.GetAnalysis)
		r.Get("/cleaned.csv", h.DownloadCleaned)
	})

	return r
}

// AnalysisCtx middleware validates the id parameter.
func (h *AnalysisHandler) AnalysisCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("id", "Analysis ID must be a UUID"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateAnalysis handles POST /api/analyses: a multipart upload with one
// "file" part. On success it responds 201 with the full report.
func (h *AnalysisHandler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "A file part is required"))
		return
	}
	defer file.Close()

	h.logger.InfoContext(ctx, "analysis upload received",
		slog.String("file_name", header.Filename),
		slog.Int64("size", header.Size))

	report, err := h.service.Analyze(ctx, header.Filename, file)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapAnalyzeError(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, apiv1.NewAnalysisResponse(report))
}

// mapAnalyzeError translates engine failures into API errors. Only the two
// top-level failures get dedicated codes; anything else falls through to
// the central handler's default mapping.
func (h *AnalysisHandler) mapAnalyzeError(err error) error {
	if errors.Is(err, dataprocessing.ErrEmptyDataset) {
		return apierrors.ErrEmptyDataset
	}
	if apierrors.IsType(err, apierrors.ErrTypeParsing) {
		return apierrors.ParseFailedError(err)
	}
	return err
}

// ListAnalyses handles GET /api/analyses.
func (h *AnalysisHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	summaries := h.service.ListReports(r.Context())
	render.JSON(w, r, apiv1.NewAnalysisListResponse(summaries))
}

// GetAnalysis handles GET /api/analyses/{id}.
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	report, err := h.service.GetReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrAnalysisNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.ErrAnalysisNotFound)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, apiv1.NewAnalysisResponse(report))
}

// DownloadCleaned handles GET /api/analyses/{id}/cleaned.csv, streaming the
// cleaned dataset as a CSV attachment.
func (h *AnalysisHandler) DownloadCleaned(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	report, err := h.service.GetReport(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrAnalysisNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.ErrAnalysisNotFound)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", exporterFileName(report.FileName)))

	if err := h.service.WriteCleanedCSV(ctx, id, w); err != nil {
		// Headers are already out; all we can do is log.
		h.logger.ErrorContext(ctx, "failed to stream cleaned CSV",
			slog.String("report_id", id),
			slog.String("error", err.Error()))
	}
}

func exporterFileName(original string) string {
	stem := exporter.OutputStem(original)
	if stem == "" {
		stem = "dataset"
	}
	return fmt.Sprintf("%s_cleaned.csv", stem)
}
