package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabpulse/pkg/contracts/domain"
)

func numericDataset() *domain.Dataset {
	return &domain.Dataset{
		Headers: []string{"amount"},
		Rows: []domain.Row{
			{"amount": domain.NumberValue(10)},
			{"amount": domain.MissingValue()},
			{"amount": domain.NumberValue(30)},
		},
	}
}

func TestCleanColumnNumericFillsMean(t *testing.T) {
	ds := numericDataset()
	analysis := AnalyzeColumn("amount", ds.Column("amount"), domain.ColumnNumeric)

	action := CleanColumn(ds, analysis)

	require.NotNil(t, action)
	assert.Equal(t, "amount", action.Column)
	assert.Equal(t, domain.ActionFillMean, action.Action)
	assert.Equal(t, "filled 1 missing cells with mean 20.00", action.Detail)

	assert.Equal(t, domain.NumberValue(10), ds.Rows[0].Get("amount"))
	assert.Equal(t, domain.NumberValue(20), ds.Rows[1].Get("amount"))
	assert.Equal(t, domain.NumberValue(30), ds.Rows[2].Get("amount"))
}

func TestCleanColumnCategoricalFillsMode(t *testing.T) {
	ds := &domain.Dataset{
		Headers: []string{"color"},
		Rows: []domain.Row{
			{"color": domain.StringValue("red")},
			{"color": domain.StringValue("red")},
			{"color": domain.StringValue("blue")},
			{"color": domain.MissingValue()},
		},
	}
	analysis := AnalyzeColumn("color", ds.Column("color"), domain.ColumnCategorical)

	action := CleanColumn(ds, analysis)

	require.NotNil(t, action)
	assert.Equal(t, domain.ActionFillMode, action.Action)
	assert.Equal(t, `filled 1 missing cells with mode "red"`, action.Detail)
	assert.Equal(t, domain.StringValue("red"), ds.Rows[3].Get("color"))
}

func TestCleanColumnNoMissingNoAction(t *testing.T) {
	ds := &domain.Dataset{
		Headers: []string{"n"},
		Rows: []domain.Row{
			{"n": domain.NumberValue(1)},
		},
	}
	analysis := AnalyzeColumn("n", ds.Column("n"), domain.ColumnNumeric)

	assert.Nil(t, CleanColumn(ds, analysis))
}

func TestCleanColumnTextAndUnknownUntouched(t *testing.T) {
	for _, colType := range []domain.ColumnType{domain.ColumnText, domain.ColumnUnknown} {
		ds := &domain.Dataset{
			Headers: []string{"c"},
			Rows: []domain.Row{
				{"c": domain.StringValue("x")},
				{"c": domain.MissingValue()},
			},
		}
		analysis := AnalyzeColumn("c", ds.Column("c"), colType)

		assert.Nil(t, CleanColumn(ds, analysis), string(colType))
		assert.True(t, ds.Rows[1].Get("c").IsMissing(), string(colType))
	}
}

func TestCleanColumnEmptyModePoolStillLogsAction(t *testing.T) {
	// Every present cell is non-string, so the mode pool is empty. The
	// action is still recorded; the missing cells stay missing because the
	// fill value normalizes to missing.
	ds := &domain.Dataset{
		Headers: []string{"c"},
		Rows: []domain.Row{
			{"c": domain.NumberValue(1)},
			{"c": domain.MissingValue()},
		},
	}
	analysis := AnalyzeColumn("c", ds.Column("c"), domain.ColumnCategorical)

	action := CleanColumn(ds, analysis)
	require.NotNil(t, action)
	assert.Equal(t, `filled 1 missing cells with mode ""`, action.Detail)
	assert.True(t, ds.Rows[1].Get("c").IsMissing())
}

func TestCleanColumnIsIdempotent(t *testing.T) {
	ds := numericDataset()
	analysis := AnalyzeColumn("amount", ds.Column("amount"), domain.ColumnNumeric)
	require.NotNil(t, CleanColumn(ds, analysis))

	// Re-analyzing the cleaned column finds nothing missing.
	again := AnalyzeColumn("amount", ds.Column("amount"), domain.ColumnNumeric)
	assert.Nil(t, CleanColumn(ds, again))
}
