package dataprocessing

import (
	"fmt"

	"tabpulse/pkg/contracts/domain"
)

// CleanColumn imputes the missing cells of one column in place on the
// working dataset, using the statistic already computed for it: the mean
// for numeric columns, the mode for categorical and date columns. Text and
// unknown columns are never imputed. Returns the logged action, or nil when
// the column had nothing to fill.
//
// Non-missing cells are never touched, and every missing cell in the column
// receives the identical value. Running the cleaner again on an already
// cleaned column is a no-op because its recomputed missing count is zero.
func CleanColumn(ds *domain.Dataset, analysis domain.ColumnAnalysis) *domain.CleaningAction {
	if analysis.MissingCount == 0 {
		return nil
	}

	switch analysis.Type {
	case domain.ColumnNumeric:
		mean := 0.0
		if analysis.Stats.Numeric != nil {
			mean = analysis.Stats.Numeric.Mean
		}
		filled := fillMissing(ds, analysis.Name, domain.NumberValue(mean))
		return &domain.CleaningAction{
			Column: analysis.Name,
			Action: domain.ActionFillMean,
			Detail: fmt.Sprintf("filled %d missing cells with mean %.2f", filled, mean),
		}

	case domain.ColumnCategorical, domain.ColumnDate:
		mode := ""
		if analysis.Stats.Frequency != nil {
			mode = analysis.Stats.Frequency.Mode
		}
		// An empty mode means the column had no string-typed values to
		// draw from; the cells stay missing but the attempt is still
		// logged, keeping one action per imputable column with gaps.
		filled := fillMissing(ds, analysis.Name, domain.StringValue(mode))
		return &domain.CleaningAction{
			Column: analysis.Name,
			Action: domain.ActionFillMode,
			Detail: fmt.Sprintf("filled %d missing cells with mode %q", filled, mode),
		}

	default:
		return nil
	}
}

// fillMissing writes v into every missing cell of the column and returns
// how many cells were written.
func fillMissing(ds *domain.Dataset, header string, v domain.Value) int {
	filled := 0
	for _, row := range ds.Rows {
		if row.Get(header).IsMissing() {
			row[header] = v
			filled++
		}
	}
	return filled
}
