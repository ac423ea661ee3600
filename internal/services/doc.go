// Package services contains the application service layer sitting between
// the HTTP transport and the dataprocessing engine. The AnalysisService
// owns parsing, processing, result retention, and export of completed
// analyses.
package services
