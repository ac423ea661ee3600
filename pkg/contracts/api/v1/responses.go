// Package api contains the v1 HTTP API contract definitions.
package api

import (
	"tabpulse/pkg/contracts/domain"
)

// Response is the common envelope for single-object responses.
type Response struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
}

// AnalysisResponse wraps a full analysis report.
type AnalysisResponse struct {
	Status string                 `json:"status"`
	Data   *domain.AnalysisReport `json:"data"`
}

// AnalysisListResponse wraps the stored analysis summaries.
type AnalysisListResponse struct {
	Status string                   `json:"status"`
	Data   []domain.AnalysisSummary `json:"data"`
	Count  int                      `json:"count"`
}

// HealthResponse reports process liveness.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Timestamp     string `json:"timestamp"`
}

// ReadyResponse reports readiness to accept work.
type ReadyResponse struct {
	Ready bool `json:"ready"`
}

// NewAnalysisResponse builds a success envelope around a report.
func NewAnalysisResponse(report *domain.AnalysisReport) AnalysisResponse {
	return AnalysisResponse{Status: "success", Data: report}
}

// NewAnalysisListResponse builds a success envelope around summaries.
func NewAnalysisListResponse(summaries []domain.AnalysisSummary) AnalysisListResponse {
	return AnalysisListResponse{Status: "success", Data: summaries, Count: len(summaries)}
}
