package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"tabpulse/internal/dataprocessing"
	"tabpulse/internal/errors"
	"tabpulse/internal/exporter"
	"tabpulse/internal/validation"
	"tabpulse/pkg/contracts/domain"
)

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tabpulse_analyses_total",
		Help: "Completed analyses by outcome.",
	}, []string{"status"})

	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tabpulse_analysis_duration_seconds",
		Help:    "Wall time of one analysis run.",
		Buckets: prometheus.DefBuckets,
	})
)

// ErrAnalysisNotFound is returned when no stored analysis matches an ID.
var ErrAnalysisNotFound = errors.NewNotFoundError("analysis")

// uploadRequest carries the validated metadata of one upload.
type uploadRequest struct {
	FileName string `validate:"required,max=255"`
}

// analysisResult pairs a report with its cleaned dataset.
type analysisResult struct {
	report  *domain.AnalysisReport
	cleaned *domain.Dataset
}

// AnalysisService runs analyses and retains completed results in memory,
// keyed by report ID. The engine itself is single-threaded per run; the
// store is guarded so concurrent HTTP requests can run and query safely.
type AnalysisService struct {
	logger    *slog.Logger
	processor *dataprocessing.Processor
	csvWriter *exporter.CSVWriter
	validate  *validator.Validate
	fileCheck *validation.FileValidator

	mu      sync.RWMutex
	results map[string]analysisResult
	order   []string
}

// NewAnalysisService creates the service with the given engine thresholds.
func NewAnalysisService(logger *slog.Logger, cfg dataprocessing.ProcessorConfig) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "analysis_service"))
	return &AnalysisService{
		logger:    logger,
		processor: dataprocessing.NewProcessor(logger, cfg),
		csvWriter: exporter.NewCSVWriter(logger),
		validate:  validator.New(),
		fileCheck: validation.NewFileValidator(logger),
		results:   make(map[string]analysisResult),
	}
}

// Analyze parses one uploaded file, runs the full pipeline, stores the
// result, and returns the report. Parse failures and the empty-dataset
// failure propagate to the caller; the stored state is untouched on error.
func (s *AnalysisService) Analyze(ctx context.Context, fileName string, r io.Reader) (*domain.AnalysisReport, error) {
	start := time.Now()

	req := uploadRequest{FileName: fileName}
	if err := s.validate.Struct(req); err != nil {
		return nil, errors.NewAppValidationError(fmt.Sprintf("invalid upload: %v", err))
	}
	if err := s.fileCheck.ValidateUploadName(fileName); err != nil {
		return nil, errors.NewAppValidationError(err.Error())
	}

	ds, err := parseByExtension(fileName, r)
	if err != nil {
		analysesTotal.WithLabelValues("parse_error").Inc()
		return nil, err
	}

	report, cleaned, err := s.processor.Process(ctx, fileName, ds)
	if err != nil {
		analysesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	s.mu.Lock()
	s.results[report.ID] = analysisResult{report: report, cleaned: cleaned}
	s.order = append(s.order, report.ID)
	s.mu.Unlock()

	analysesTotal.WithLabelValues("ok").Inc()
	analysisDuration.Observe(time.Since(start).Seconds())

	s.logger.InfoContext(ctx, "analysis stored",
		slog.String("report_id", report.ID),
		slog.String("file_name", fileName))

	return report, nil
}

// GetReport returns the stored report for an ID.
func (s *AnalysisService) GetReport(ctx context.Context, id string) (*domain.AnalysisReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[id]
	if !ok {
		return nil, ErrAnalysisNotFound
	}
	return result.report, nil
}

// ListReports returns summaries of all stored analyses in completion order.
func (s *AnalysisService) ListReports(ctx context.Context) []domain.AnalysisSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]domain.AnalysisSummary, 0, len(s.order))
	for _, id := range s.order {
		if result, ok := s.results[id]; ok {
			summaries = append(summaries, result.report.Summary())
		}
	}
	return summaries
}

// WriteCleanedCSV streams the cleaned dataset of a stored analysis as CSV.
func (s *AnalysisService) WriteCleanedCSV(ctx context.Context, id string, w io.Writer) error {
	s.mu.RLock()
	result, ok := s.results[id]
	s.mu.RUnlock()

	if !ok {
		return ErrAnalysisNotFound
	}
	return s.csvWriter.Encode(w, result.cleaned)
}

// parseByExtension picks the parser matching the uploaded file's extension.
func parseByExtension(fileName string, r io.Reader) (*domain.Dataset, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm":
		return dataprocessing.ParseExcel(r)
	case ".tsv":
		return dataprocessing.ParseDelimited(r, '\t')
	default:
		return dataprocessing.ParseCSV(r)
	}
}
