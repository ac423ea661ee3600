package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"tabpulse/internal/config"
	"tabpulse/internal/dataprocessing"
	"tabpulse/internal/exporter"
	"tabpulse/internal/files"
	"tabpulse/internal/infrastructure"
	"tabpulse/internal/validation"
)

func main() {
	inFile := flag.String("in", "", "input file (.csv, .tsv, .xlsx) or a directory of them")
	outDir := flag.String("out", "", "output directory for the report and cleaned data (defaults to paths.output_dir)")
	bom := flag.Bool("bom", false, "prefix CSV output with a UTF-8 BOM for Excel compatibility")
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "usage: profiler -in <file> [-out <dir>] [-bom]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if *outDir == "" {
		*outDir = cfg.Paths.OutputDir
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("Failed to create output directory", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.EnsureTraceID(context.Background())

	inputs, err := resolveInputs(logger, *inFile)
	if err != nil {
		logger.ErrorContext(ctx, "Invalid input", "error", err)
		os.Exit(1)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, input := range inputs {
		input := input
		g.Go(func() error {
			if err := run(ctx, logger, cfg, input, *outDir, *bom); err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(input), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.ErrorContext(ctx, "Profiling failed", "error", err)
		os.Exit(1)
	}
}

// resolveInputs expands a directory argument into its data files. A plain
// file argument is validated and returned as a single-element list.
func resolveInputs(logger *slog.Logger, in string) ([]string, error) {
	info, err := os.Stat(in)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", in, err)
	}

	if !info.IsDir() {
		validator := validation.NewFileValidator(logger)
		if err := validator.ValidateInputFile(in); err != nil {
			return nil, err
		}
		return []string{in}, nil
	}

	discovered, err := files.NewDiscovery("").FindDataFiles(in)
	if err != nil {
		return nil, err
	}
	if len(discovered) == 0 {
		return nil, fmt.Errorf("no data files found in %s", in)
	}

	paths := make([]string, 0, len(discovered))
	for _, f := range discovered {
		paths = append(paths, f.Path)
	}
	return paths, nil
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, inFile, outDir string, bom bool) error {
	dataset, err := dataprocessing.ParseFile(inFile)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(inFile), err)
	}

	processor := dataprocessing.NewProcessor(logger, dataprocessing.ProcessorConfig{
		CategoricalMaxRatio:  cfg.Processing.CategoricalMaxRatio,
		CategoricalMinValues: cfg.Processing.CategoricalMinValues,
	})

	report, cleaned, err := processor.Process(ctx, filepath.Base(inFile), dataset)
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}

	stem := exporter.OutputStem(inFile)

	reportWriter := exporter.NewReportWriter(logger)
	reportPath := filepath.Join(outDir, stem+"_report.json")
	if err := reportWriter.WriteJSON(ctx, reportPath, report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	columnsPath := filepath.Join(outDir, stem+"_columns.csv")
	if err := reportWriter.WriteColumnSummaryCSV(ctx, columnsPath, report); err != nil {
		return fmt.Errorf("write column summary: %w", err)
	}

	csvWriter := exporter.NewCSVWriter(logger)
	cleanedPath := filepath.Join(outDir, stem+"_cleaned.csv")
	if err := csvWriter.WriteDataset(cleanedPath, cleaned, exporter.WriteOptions{BOMPrefix: bom}); err != nil {
		return fmt.Errorf("write cleaned data: %w", err)
	}

	logger.InfoContext(ctx, "Profiling complete",
		slog.String("report", reportPath),
		slog.String("cleaned", cleanedPath),
		slog.Int("rows", report.FinalRows),
		slog.Int("columns", report.FinalColumns),
		slog.Float64("seconds", report.ProcessingSeconds))

	return nil
}
