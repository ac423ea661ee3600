package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabpulse/pkg/contracts/domain"
)

func TestSynthesizeFeaturesDateParts(t *testing.T) {
	ds := &domain.Dataset{
		Headers: []string{"signup"},
		Rows: []domain.Row{
			{"signup": domain.StringValue("2024-03-09")},
			{"signup": domain.StringValue("1/2/2024")},
		},
	}

	info := SynthesizeFeatures(ds, "signup", domain.ColumnDate)

	require.NotNil(t, info)
	assert.Equal(t, "signup", info.Column)
	assert.Equal(t, []string{"signup_year", "signup_month", "signup_day"}, info.NewColumns)
	assert.Equal(t, []string{"signup", "signup_year", "signup_month", "signup_day"}, ds.Headers)

	assert.Equal(t, domain.NumberValue(2024), ds.Rows[0].Get("signup_year"))
	assert.Equal(t, domain.NumberValue(3), ds.Rows[0].Get("signup_month"))
	assert.Equal(t, domain.NumberValue(9), ds.Rows[0].Get("signup_day"))

	// Months are calendar numbers, not zero-based indexes.
	assert.Equal(t, domain.NumberValue(1), ds.Rows[1].Get("signup_month"))
	assert.Equal(t, domain.NumberValue(2), ds.Rows[1].Get("signup_day"))
}

func TestSynthesizeFeaturesDatePartsSkipBadRows(t *testing.T) {
	ds := &domain.Dataset{
		Headers: []string{"d"},
		Rows: []domain.Row{
			{"d": domain.StringValue("2024-01-15")},
			{"d": domain.StringValue("not a date")},
			{"d": domain.MissingValue()},
		},
	}

	info := SynthesizeFeatures(ds, "d", domain.ColumnDate)
	require.NotNil(t, info)

	assert.Equal(t, domain.NumberValue(2024), ds.Rows[0].Get("d_year"))

	// Failed rows never receive the derived keys.
	for _, i := range []int{1, 2} {
		_, ok := ds.Rows[i]["d_year"]
		assert.False(t, ok, "row %d", i)
		assert.True(t, ds.Rows[i].Get("d_year").IsMissing())
	}
}

func TestSynthesizeFeaturesTextShape(t *testing.T) {
	ds := &domain.Dataset{
		Headers: []string{"notes"},
		Rows: []domain.Row{
			{"notes": domain.StringValue("hello wide world")},
			{"notes": domain.MissingValue()},
			{"notes": domain.StringValue("héllo")},
		},
	}

	info := SynthesizeFeatures(ds, "notes", domain.ColumnText)

	require.NotNil(t, info)
	assert.Equal(t, []string{"notes_length", "notes_word_count"}, info.NewColumns)

	assert.Equal(t, domain.NumberValue(16), ds.Rows[0].Get("notes_length"))
	assert.Equal(t, domain.NumberValue(3), ds.Rows[0].Get("notes_word_count"))

	// Missing text counts as the empty string.
	assert.Equal(t, domain.NumberValue(0), ds.Rows[1].Get("notes_length"))
	assert.Equal(t, domain.NumberValue(0), ds.Rows[1].Get("notes_word_count"))

	// Length is in runes, not bytes.
	assert.Equal(t, domain.NumberValue(5), ds.Rows[2].Get("notes_length"))
}

func TestSynthesizeFeaturesOtherTypesYieldNothing(t *testing.T) {
	for _, colType := range []domain.ColumnType{
		domain.ColumnNumeric, domain.ColumnCategorical, domain.ColumnUnknown,
	} {
		ds := &domain.Dataset{
			Headers: []string{"c"},
			Rows:    []domain.Row{{"c": domain.NumberValue(1)}},
		}
		assert.Nil(t, SynthesizeFeatures(ds, "c", colType), string(colType))
		assert.Equal(t, []string{"c"}, ds.Headers, string(colType))
	}
}
