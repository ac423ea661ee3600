package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"tabpulse/pkg/contracts/domain"
)

// CSVWriter writes datasets to CSV files.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteDataset writes a dataset to a CSV file, headers first, cells in
// header order with missing cells as empty fields.
func (w *CSVWriter) WriteDataset(filePath string, ds *domain.Dataset, options WriteOptions) error {
	w.logger.Info("writing dataset CSV",
		slog.String("file_path", filePath),
		slog.Int("rows", len(ds.Rows)),
		slog.Int("columns", len(ds.Headers)))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	return w.writeRecords(file, ds)
}

// Encode streams the dataset as CSV to any writer. Used for HTTP downloads.
func (w *CSVWriter) Encode(out io.Writer, ds *domain.Dataset) error {
	return w.writeRecords(out, ds)
}

func (w *CSVWriter) writeRecords(out io.Writer, ds *domain.Dataset) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if err := writer.Write(ds.Headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	record := make([]string, len(ds.Headers))
	for i, row := range ds.Rows {
		for j, header := range ds.Headers {
			record[j] = row.Get(header).String()
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
