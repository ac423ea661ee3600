package dataprocessing

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabpulse/internal/shared/testutil"
	"tabpulse/pkg/contracts/domain"
)

const sampleCSV = `name,amount,signup,color,notes
alice,10,2024-01-15,red,hello world
bob,,2024-02-01,blue,short
carol,30,2024-03-09,red,a longer note here
`

func parseSample(t *testing.T) *domain.Dataset {
	t.Helper()
	ds, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	return ds
}

func TestProcessEndToEnd(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	p := NewProcessor(logger, DefaultProcessorConfig())
	ds := parseSample(t)

	report, cleaned, err := p.Process(context.Background(), "sample.csv", ds)
	require.NoError(t, err)
	require.NotNil(t, report)
	require.NotNil(t, cleaned)

	_, err = uuid.Parse(report.ID)
	assert.NoError(t, err)
	assert.Equal(t, "sample.csv", report.FileName)
	assert.Equal(t, 3, report.InitialRows)
	assert.Equal(t, 3, report.FinalRows)
	assert.Equal(t, 5, report.InitialColumns)

	// One analysis per original column, in header order.
	require.Len(t, report.Columns, 5)
	types := map[string]domain.ColumnType{}
	for _, c := range report.Columns {
		types[c.Name] = c.Type
	}
	assert.Equal(t, domain.ColumnNumeric, types["amount"])
	assert.Equal(t, domain.ColumnDate, types["signup"])
	assert.Equal(t, domain.ColumnText, types["name"])
	assert.Equal(t, domain.ColumnText, types["notes"])

	// amount had one gap; it is filled with the mean of 10 and 30.
	require.Len(t, report.CleaningActions, 1)
	assert.Equal(t, "amount", report.CleaningActions[0].Column)
	assert.Equal(t, domain.NumberValue(20), cleaned.Rows[1].Get("amount"))

	// signup contributes 3 derived columns; name, color, and notes 2 each.
	assert.Equal(t, 5+3+2+2+2, len(cleaned.Headers))
	assert.Equal(t, len(cleaned.Rows[0]), report.FinalColumns)

	assert.True(t, logs.HasMessage("starting analysis"))
	assert.True(t, logs.HasMessage("analysis complete"))
}

func TestProcessDoesNotMutateInput(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	p := NewProcessor(logger, DefaultProcessorConfig())
	ds := parseSample(t)

	_, cleaned, err := p.Process(context.Background(), "sample.csv", ds)
	require.NoError(t, err)

	assert.Equal(t, 5, len(ds.Headers))
	assert.True(t, ds.Rows[1].Get("amount").IsMissing())
	assert.NotEqual(t, len(ds.Headers), len(cleaned.Headers))
}

func TestProcessEmptyDataset(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	p := NewProcessor(logger, DefaultProcessorConfig())

	tests := []struct {
		name string
		ds   *domain.Dataset
	}{
		{"nil dataset", nil},
		{"header only", &domain.Dataset{Headers: []string{"a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, cleaned, err := p.Process(context.Background(), "empty.csv", tt.ds)
			assert.Nil(t, report)
			assert.Nil(t, cleaned)
			assert.ErrorIs(t, err, ErrEmptyDataset)
		})
	}
}

func TestProcessReportIDsAreUnique(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	p := NewProcessor(logger, DefaultProcessorConfig())

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		report, _, err := p.Process(context.Background(), "sample.csv", parseSample(t))
		require.NoError(t, err)
		assert.False(t, seen[report.ID])
		seen[report.ID] = true
	}
}

func TestNewProcessorDefaults(t *testing.T) {
	p := NewProcessor(nil, ProcessorConfig{})
	assert.Equal(t, DefaultProcessorConfig(), p.cfg)
	assert.NotNil(t, p.logger)
}
