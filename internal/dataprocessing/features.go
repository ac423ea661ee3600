package dataprocessing

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"tabpulse/pkg/contracts/domain"
)

// SynthesizeFeatures appends derived columns for one date or text column and
// returns the log entry describing them. Columns of any other type yield
// nil and no new headers.
//
// Date columns gain <col>_year, <col>_month (1 to 12), and <col>_day. A row
// whose cell fails to parse simply never receives the three keys; the
// failure stays local to that row and the column-level log entry is emitted
// regardless. Text columns gain <col>_length and <col>_word_count, computed
// for every row with missing treated as the empty string.
func SynthesizeFeatures(ds *domain.Dataset, name string, colType domain.ColumnType) *domain.FeatureEngineeringInfo {
	switch colType {
	case domain.ColumnDate:
		return synthesizeDateParts(ds, name)
	case domain.ColumnText:
		return synthesizeTextShape(ds, name)
	default:
		return nil
	}
}

func synthesizeDateParts(ds *domain.Dataset, name string) *domain.FeatureEngineeringInfo {
	yearCol := name + "_year"
	monthCol := name + "_month"
	dayCol := name + "_day"
	ds.Headers = append(ds.Headers, yearCol, monthCol, dayCol)

	for _, row := range ds.Rows {
		v := row.Get(name)
		if v.Kind != domain.KindString {
			continue
		}
		t, ok := parseDate(v.Str)
		if !ok {
			continue
		}
		row[yearCol] = domain.NumberValue(float64(t.Year()))
		row[monthCol] = domain.NumberValue(float64(t.Month()))
		row[dayCol] = domain.NumberValue(float64(t.Day()))
	}

	return &domain.FeatureEngineeringInfo{
		Column:      name,
		NewColumns:  []string{yearCol, monthCol, dayCol},
		Description: fmt.Sprintf("extracted calendar parts from %s", name),
	}
}

func synthesizeTextShape(ds *domain.Dataset, name string) *domain.FeatureEngineeringInfo {
	lengthCol := name + "_length"
	wordsCol := name + "_word_count"
	ds.Headers = append(ds.Headers, lengthCol, wordsCol)

	for _, row := range ds.Rows {
		s := row.Get(name).String()
		row[lengthCol] = domain.NumberValue(float64(utf8.RuneCountInString(s)))
		row[wordsCol] = domain.NumberValue(float64(len(strings.Fields(s))))
	}

	return &domain.FeatureEngineeringInfo{
		Column:      name,
		NewColumns:  []string{lengthCol, wordsCol},
		Description: fmt.Sprintf("derived length and word count from %s", name),
	}
}
