package dataprocessing

import (
	"sort"

	"tabpulse/pkg/contracts/domain"
)

// orderedCounter counts string occurrences while remembering first-insertion
// order. Mode tie-breaking is part of the engine's contract: when two values
// share the highest count, the one first seen in the column wins, so the
// iteration order must be deterministic rather than map order.
type orderedCounter struct {
	keys   []string
	counts map[string]int
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) add(s string) {
	if _, seen := c.counts[s]; !seen {
		c.keys = append(c.keys, s)
	}
	c.counts[s]++
}

// mode returns the first-encountered maximum: later keys replace the running
// best only with a strictly greater count.
func (c *orderedCounter) mode() string {
	var best string
	bestCount := 0
	for _, k := range c.keys {
		if c.counts[k] > bestCount {
			best = k
			bestCount = c.counts[k]
		}
	}
	return best
}

func (c *orderedCounter) distinct() int {
	return len(c.keys)
}

// AnalyzeColumn produces the per-column report record: the missing count
// over the original, pre-cleaning values and the statistics bag matching the
// inferred type.
func AnalyzeColumn(name string, values []domain.Value, colType domain.ColumnType) domain.ColumnAnalysis {
	analysis := domain.ColumnAnalysis{
		Name: name,
		Type: colType,
	}

	for _, v := range values {
		if v.IsMissing() {
			analysis.MissingCount++
		}
	}

	switch colType {
	case domain.ColumnNumeric:
		analysis.Stats.Numeric = numericStats(values)
	case domain.ColumnCategorical, domain.ColumnDate:
		counter := stringPool(values)
		analysis.Stats.Frequency = &domain.FrequencyStats{
			Mode:         counter.mode(),
			UniqueValues: counter.distinct(),
		}
	case domain.ColumnText:
		counter := stringPool(values)
		analysis.Stats.Frequency = &domain.FrequencyStats{
			UniqueValues: counter.distinct(),
		}
	}

	return analysis
}

// numericStats aggregates the coercible values of a numeric column. Cells
// that fail coercion are filtered out rather than propagated; the guard
// keeps a fully-missing column at mean 0 instead of NaN.
func numericStats(values []domain.Value) *domain.NumericStats {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if n, ok := coerceNumber(v); ok {
			nums = append(nums, n)
		}
	}

	stats := &domain.NumericStats{}
	if len(nums) == 0 {
		return stats
	}

	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	stats.Mean = sum / float64(len(nums))

	sort.Float64s(nums)
	mid := len(nums) / 2
	if len(nums)%2 == 0 {
		stats.Median = (nums[mid-1] + nums[mid]) / 2
	} else {
		stats.Median = nums[mid]
	}
	stats.Min = nums[0]
	stats.Max = nums[len(nums)-1]

	return stats
}

// stringPool counts the string-typed cells of a column in encounter order.
// Numeric and boolean cells are excluded from mode and uniqueness
// statistics even in date or categorical columns; the report reflects what
// the raw file carried as text.
func stringPool(values []domain.Value) *orderedCounter {
	counter := newOrderedCounter()
	for _, v := range values {
		if v.Kind == domain.KindString {
			counter.add(v.Str)
		}
	}
	return counter
}
