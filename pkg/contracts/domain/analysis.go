package domain

import (
	"time"
)

// ColumnType is the semantic type the inference engine assigns to a column.
type ColumnType string

const (
	ColumnNumeric     ColumnType = "numeric"
	ColumnCategorical ColumnType = "categorical"
	ColumnDate        ColumnType = "date"
	ColumnText        ColumnType = "text"
	ColumnUnknown     ColumnType = "unknown"
)

// NumericStats holds the aggregate statistics computed for numeric columns.
// Mean is 0 (not NaN) when the column has no usable numeric values.
type NumericStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// FrequencyStats holds occurrence statistics for categorical, date, and text
// columns. Both fields are computed over string-typed cells only; cells the
// parser already converted to numbers or booleans do not participate.
type FrequencyStats struct {
	Mode         string `json:"mode,omitempty"`
	UniqueValues int    `json:"unique_values"`
}

// ColumnStats is the per-column statistics bag. Which branch is populated
// depends on the inferred type; unknown columns carry neither.
type ColumnStats struct {
	Numeric   *NumericStats   `json:"numeric,omitempty"`
	Frequency *FrequencyStats `json:"frequency,omitempty"`
}

// ColumnAnalysis is the per-column record of the report: inferred type,
// missing cells counted before cleaning, and the type-dependent statistics.
// Exactly one is produced per original header, in header order.
type ColumnAnalysis struct {
	Name         string      `json:"name" validate:"required"`
	Type         ColumnType  `json:"type" validate:"required"`
	MissingCount int         `json:"missing_count" validate:"min=0"`
	Stats        ColumnStats `json:"stats"`
}

// CleaningAction logs one imputation. Detail embeds the concrete value the
// missing cells were filled with.
type CleaningAction struct {
	Column string `json:"column"`
	Action string `json:"action"`
	Detail string `json:"detail"`
}

// CleaningAction labels.
const (
	ActionFillMean = "fill_missing_mean"
	ActionFillMode = "fill_missing_mode"
)

// FeatureEngineeringInfo logs the derived columns appended for one source
// column. Logged once per date or text column even when individual rows
// failed to yield the derived values.
type FeatureEngineeringInfo struct {
	Column      string   `json:"column"`
	NewColumns  []string `json:"new_columns"`
	Description string   `json:"description"`
}

// AnalysisReport is the immutable aggregate produced by one analysis run.
// It is the sole object presentation and export collaborators consume.
type AnalysisReport struct {
	ID                string                   `json:"id" validate:"required,uuid"`
	FileName          string                   `json:"file_name"`
	InitialRows       int                      `json:"initial_rows" validate:"min=0"`
	FinalRows         int                      `json:"final_rows" validate:"min=0"`
	InitialColumns    int                      `json:"initial_columns" validate:"min=0"`
	FinalColumns      int                      `json:"final_columns" validate:"min=0"`
	ProcessingSeconds float64                  `json:"processing_seconds"`
	Columns           []ColumnAnalysis         `json:"columns"`
	CleaningActions   []CleaningAction         `json:"cleaning_actions"`
	Features          []FeatureEngineeringInfo `json:"features"`
	GeneratedAt       time.Time                `json:"generated_at"`
}

// AnalysisSummary is the listing view of a stored report.
type AnalysisSummary struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	Rows        int       `json:"rows"`
	Columns     int       `json:"columns"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Summary derives the listing view from a full report.
func (r *AnalysisReport) Summary() AnalysisSummary {
	return AnalysisSummary{
		ID:          r.ID,
		FileName:    r.FileName,
		Rows:        r.FinalRows,
		Columns:     r.FinalColumns,
		GeneratedAt: r.GeneratedAt,
	}
}
