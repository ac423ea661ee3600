package exporter

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabpulse/internal/shared/testutil"
	"tabpulse/pkg/contracts/domain"
)

func sampleReport() *domain.AnalysisReport {
	return &domain.AnalysisReport{
		ID:             "11111111-2222-3333-4444-555555555555",
		FileName:       "survey.csv",
		InitialRows:    3,
		FinalRows:      3,
		InitialColumns: 2,
		FinalColumns:   4,
		Columns: []domain.ColumnAnalysis{
			{
				Name:         "amount",
				Type:         domain.ColumnNumeric,
				MissingCount: 1,
				Stats: domain.ColumnStats{
					Numeric: &domain.NumericStats{Mean: 20, Median: 20, Min: 10, Max: 30},
				},
			},
			{
				Name: "color",
				Type: domain.ColumnCategorical,
				Stats: domain.ColumnStats{
					Frequency: &domain.FrequencyStats{Mode: "red", UniqueValues: 2},
				},
			},
		},
		CleaningActions: []domain.CleaningAction{},
		Features:        []domain.FeatureEngineeringInfo{},
		GeneratedAt:     time.Now(),
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	w := NewReportWriter(logger)
	path := filepath.Join(t.TempDir(), "survey_report.json")

	require.NoError(t, w.WriteJSON(context.Background(), path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded domain.AnalysisReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "survey.csv", decoded.FileName)
	require.Len(t, decoded.Columns, 2)
	assert.Equal(t, domain.ColumnNumeric, decoded.Columns[0].Type)
	require.NotNil(t, decoded.Columns[0].Stats.Numeric)
	assert.InDelta(t, 20.0, decoded.Columns[0].Stats.Numeric.Mean, 1e-9)
}

func TestWriteColumnSummaryCSV(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	w := NewReportWriter(logger)
	path := filepath.Join(t.TempDir(), "survey_columns.csv")

	require.NoError(t, w.WriteColumnSummaryCSV(context.Background(), path, sampleReport()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t,
		[]string{"Column", "Type", "MissingCount", "Mean", "Median", "Min", "Max", "Mode", "UniqueValues"},
		records[0])
	assert.Equal(t,
		[]string{"amount", "numeric", "1", "20.00", "20.00", "10.00", "30.00", "", ""},
		records[1])
	assert.Equal(t,
		[]string{"color", "categorical", "0", "", "", "", "", "red", "2"},
		records[2])
}

func TestOutputStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"survey.csv", "survey"},
		{"data/reports/survey.xlsx", "survey"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputStem(tt.in))
	}
}
