// Package dataprocessing implements the single-pass column inference and
// cleaning engine behind tabpulse.
//
// # Architecture
//
// The package is organized around one forward-only pipeline:
//
//	Parser → Dataset → Type Inference → Column Analysis → Cleaning → Feature Synthesis → Report
//
// 1. Parser: reads delimited text or Excel workbooks into a domain.Dataset
// 2. Inference: classifies each column as numeric, categorical, date, text, or unknown
// 3. Analyzer: counts missing cells and computes type-specific statistics
// 4. Cleaner: imputes missing cells on a working clone using the computed statistic
// 5. Features: derives date-part and text-shape columns
// 6. Processor: orchestrates the stages and assembles the AnalysisReport
//
// # Usage
//
//	ds, err := dataprocessing.ParseFile("survey.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p := dataprocessing.NewProcessor(logger, dataprocessing.DefaultProcessorConfig())
//	report, cleaned, err := p.Process(ctx, "survey.csv", ds)
//
// # Error Handling
//
// Only two failures reach the caller: a parse failure (wrapped with the
// parser's message intact) and ErrEmptyDataset when the file has headers but
// no data rows. Per-row failures inside feature synthesis are recovered
// locally and never abort the run.
//
// # Concurrency
//
// The pipeline is synchronous and single-threaded. Each Process call clones
// its input and holds no state between runs, so distinct calls are
// independent; a single Dataset must not be processed concurrently.
package dataprocessing
