package dataprocessing

import (
	"math"
	"strconv"
	"strings"
	"time"

	"tabpulse/pkg/contracts/domain"
)

// dateLayouts lists the calendar formats the engine recognizes. This is
// deliberately not a general date parser; it covers just enough shapes to
// classify columns and extract year/month/day features.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// parseDate attempts each known layout in order.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// InferColumnType classifies a column by its non-missing values. The checks
// run in a strict order with early return because they are not mutually
// exclusive: a column of 4-digit years satisfies both the numeric and the
// date check, and numeric wins.
//
//  1. no non-missing values                                   → unknown
//  2. every value numeric or losslessly numeric string        → numeric
//  3. every value a date-parseable string                     → date
//  4. distinct/total < CategoricalMaxRatio and
//     total > CategoricalMinValues                            → categorical
//  5. otherwise                                               → text
func InferColumnType(values []domain.Value, cfg ProcessorConfig) domain.ColumnType {
	present := make([]domain.Value, 0, len(values))
	for _, v := range values {
		if !v.IsMissing() {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return domain.ColumnUnknown
	}

	if allNumeric(present) {
		return domain.ColumnNumeric
	}
	if allDates(present) {
		return domain.ColumnDate
	}

	distinct := make(map[string]struct{}, len(present))
	for _, v := range present {
		distinct[v.Key()] = struct{}{}
	}
	ratio := float64(len(distinct)) / float64(len(present))
	if ratio < cfg.CategoricalMaxRatio && len(present) > cfg.CategoricalMinValues {
		return domain.ColumnCategorical
	}

	return domain.ColumnText
}

// allNumeric reports whether every value is a number or a string that
// converts losslessly to one. A single non-numeric entry disqualifies the
// whole column; there is no majority vote.
func allNumeric(values []domain.Value) bool {
	for _, v := range values {
		switch v.Kind {
		case domain.KindNumber:
		case domain.KindString:
			if _, ok := coerceNumber(v); !ok {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// allDates reports whether every value is a string parseable as a calendar
// date. Cells the parser already typed as numbers or booleans disqualify
// the column.
func allDates(values []domain.Value) bool {
	for _, v := range values {
		if v.Kind != domain.KindString {
			return false
		}
		if _, ok := parseDate(v.Str); !ok {
			return false
		}
	}
	return true
}

// coerceNumber converts a cell to a float64 where possible. Used both by
// the numeric inference check and by the analyzer when aggregating, so the
// two never disagree about what counts as a number.
func coerceNumber(v domain.Value) (float64, bool) {
	switch v.Kind {
	case domain.KindNumber:
		return v.Num, true
	case domain.KindString:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
