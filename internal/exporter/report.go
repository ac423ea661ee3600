package exporter

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tabpulse/internal/errors"
	"tabpulse/pkg/contracts/domain"
)

// ReportWriter persists analysis reports as JSON and as a per-column CSV
// summary.
type ReportWriter struct {
	logger *slog.Logger
}

// NewReportWriter creates a new report writer.
func NewReportWriter(logger *slog.Logger) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{logger: logger}
}

// WriteJSON writes the full report to a JSON file.
func (w *ReportWriter) WriteJSON(ctx context.Context, path string, report *domain.AnalysisReport) error {
	w.logger.InfoContext(ctx, "writing report JSON",
		slog.String("path", path),
		slog.String("report_id", report.ID))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for report output", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create report JSON file", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(report); err != nil {
		return errors.NewStorageError("failed to encode report to JSON", err)
	}

	return nil
}

// WriteColumnSummaryCSV writes one row per analyzed column: name, type,
// missing count, and the populated statistics.
func (w *ReportWriter) WriteColumnSummaryCSV(ctx context.Context, path string, report *domain.AnalysisReport) error {
	w.logger.InfoContext(ctx, "writing column summary CSV",
		slog.String("path", path),
		slog.Int("column_count", len(report.Columns)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for CSV output", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create column summary CSV", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Column", "Type", "MissingCount", "Mean", "Median", "Min", "Max", "Mode", "UniqueValues"}
	if err := writer.Write(header); err != nil {
		return errors.NewStorageError("failed to write CSV header row", err)
	}

	for _, col := range report.Columns {
		if err := writer.Write(columnSummaryRecord(col)); err != nil {
			return errors.NewStorageError("failed to write CSV data row", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewStorageError("failed to flush column summary CSV", err)
	}
	return nil
}

func columnSummaryRecord(col domain.ColumnAnalysis) []string {
	record := []string{
		col.Name,
		string(col.Type),
		strconv.Itoa(col.MissingCount),
		"", "", "", "", "", "",
	}
	if s := col.Stats.Numeric; s != nil {
		record[3] = fmt.Sprintf("%.2f", s.Mean)
		record[4] = fmt.Sprintf("%.2f", s.Median)
		record[5] = fmt.Sprintf("%.2f", s.Min)
		record[6] = fmt.Sprintf("%.2f", s.Max)
	}
	if s := col.Stats.Frequency; s != nil {
		record[7] = s.Mode
		record[8] = strconv.Itoa(s.UniqueValues)
	}
	return record
}

// OutputStem derives the base name used for a file's exported artifacts:
// "survey.csv" becomes "survey".
func OutputStem(fileName string) string {
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
