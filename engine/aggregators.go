package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, Ranking and Sorting via RecordView
// ============================================================================
// All functions operate on RecordView — zero-copy access to any data source.
// Grouping produces SubViews (index lists into parent view).
// NaN measures are missing values: sums and means skip them, a mean with no
// values left is NaN.
// ============================================================================

// Aggregations understood by GroupAndAggregate.
const (
	AggCount = "count"
	AggSum   = "sum"
	AggAvg   = "avg"
)

// Sort modes understood by SortGroups.
const (
	SortValueDesc  = "value_desc"
	SortLabelAsc   = "label_asc"
	SortNaturalAsc = "natural_asc" // numeric when every key is a number
)

// GroupAndAggregate is the main entry point for the aggregation pipeline.
// Pipeline: group → aggregate → sort → limit.
func GroupAndAggregate(
	view RecordView,
	groupBy string,
	measure string,
	aggregation string,
	sortBy string,
	limit int,
) []Group {
	if view.Len() == 0 {
		return nil
	}

	// 1. Group
	var groups []Group
	if groupBy == "" {
		groups = []Group{{
			Key:   "all",
			Label: "Total",
			View:  view,
		}}
	} else {
		groups = groupBySingle(view, groupBy)
	}

	// 2. Aggregate
	for i := range groups {
		aggregateGroup(&groups[i], measure, aggregation)
	}

	// 3. Sort
	SortGroups(groups, sortBy)

	// 4. Limit
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	return groups
}

// ============================================================================
// GROUPING
// ============================================================================

// groupBySingle groups rows by one dimension. Rows with an empty key are
// dropped, as they are from the filter options.
func groupBySingle(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if key == "" {
			continue
		}
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

// ============================================================================
// AGGREGATION
// ============================================================================

func aggregateGroup(group *Group, measure string, aggregation string) {
	group.Count = group.View.Len()

	switch aggregation {
	case AggCount:
		group.Value = float64(group.Count)
	case AggAvg:
		group.Value = AvgMeasure(group.View, measure)
	default:
		group.Value = SumMeasure(group.View, measure)
	}
}

// SumMeasure sums a named measure across a view, skipping NaN.
func SumMeasure(view RecordView, measure string) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		if v := view.Measure(i, measure); !math.IsNaN(v) {
			total += v
		}
	}
	return total
}

// AvgMeasure computes the mean of a named measure.
// Returns NaN when the view holds no non-NaN values.
func AvgMeasure(view RecordView, measure string) float64 {
	var total float64
	n := 0
	for i := 0; i < view.Len(); i++ {
		v := view.Measure(i, measure)
		if math.IsNaN(v) {
			continue
		}
		total += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return total / float64(n)
}

// MeanOf returns the mean of values, skipping NaN. NaN when nothing is left.
func MeanOf(values []float64) float64 {
	var total float64
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		total += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return total / float64(n)
}

// ============================================================================
// RANKING
// ============================================================================

// TopN returns a view of at most n rows ordered by measure descending.
// Ties keep their original row order. NaN values sort last.
// n <= 0 returns every row, ranked.
func TopN(view RecordView, measure string, n int) RecordView {
	indices := make([]int, view.Len())
	for i := range indices {
		indices[i] = i
	}

	sort.SliceStable(indices, func(a, b int) bool {
		va := view.Measure(indices[a], measure)
		vb := view.Measure(indices[b], measure)
		if math.IsNaN(vb) {
			return !math.IsNaN(va)
		}
		if math.IsNaN(va) {
			return false
		}
		return va > vb
	})

	if n > 0 && len(indices) > n {
		indices = indices[:n]
	}
	return newSubView(view, indices)
}

// ValueCounts counts occurrences of each non-empty value across one or more
// dimensions. A row contributes once per dimension holding a value.
// Result is ordered by count descending, then label ascending.
func ValueCounts(view RecordView, dimensions ...string) []Group {
	counts := make(map[string]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		for _, dim := range dimensions {
			val := view.Dimension(i, dim)
			if val == "" {
				continue
			}
			if _, seen := counts[val]; !seen {
				order = append(order, val)
			}
			counts[val]++
		}
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			Value: float64(counts[key]),
			Count: counts[key],
		})
	}

	SortGroups(groups, SortLabelAsc)
	SortGroups(groups, SortValueDesc)
	return groups
}

// ============================================================================
// CORRELATION
// ============================================================================

// Correlation returns the pairwise Pearson correlation matrix of measures.
// Each pair uses the rows where both values are present. A pair with fewer
// than two such rows, or with zero variance on either side, is NaN.
func Correlation(view RecordView, measures []string) [][]float64 {
	k := len(measures)
	matrix := make([][]float64, k)
	for i := range matrix {
		matrix[i] = make([]float64, k)
	}

	for a := 0; a < k; a++ {
		for b := a; b < k; b++ {
			r := pearson(view, measures[a], measures[b])
			matrix[a][b] = r
			matrix[b][a] = r
		}
	}
	return matrix
}

func pearson(view RecordView, x, y string) float64 {
	var sumX, sumY float64
	n := 0
	for i := 0; i < view.Len(); i++ {
		vx, vy := view.Measure(i, x), view.Measure(i, y)
		if math.IsNaN(vx) || math.IsNaN(vy) {
			continue
		}
		sumX += vx
		sumY += vy
		n++
	}
	if n < 2 {
		return math.NaN()
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < view.Len(); i++ {
		vx, vy := view.Measure(i, x), view.Measure(i, y)
		if math.IsNaN(vx) || math.IsNaN(vy) {
			continue
		}
		dx, dy := vx-meanX, vy-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}

	r := cov / math.Sqrt(varX*varY)
	// Rounding can push a perfect fit just past ±1.
	return math.Max(-1, math.Min(1, r))
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups sorts aggregate groups by the specified sort mode.
// Sorting is stable: equal groups keep their incoming order.
func SortGroups(groups []Group, sortBy string) {
	switch sortBy {
	case SortValueDesc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	case SortLabelAsc:
		sort.SliceStable(groups, func(i, j int) bool { return strings.ToLower(groups[i].Key) < strings.ToLower(groups[j].Key) })
	case SortNaturalAsc:
		keys := make([]string, len(groups))
		for i, g := range groups {
			keys[i] = g.Key
		}
		numeric := allNumeric(keys)
		sort.SliceStable(groups, func(i, j int) bool {
			return naturalLess(groups[i].Key, groups[j].Key, numeric)
		})
	default:
		// preserve grouping order
	}
}

// SortNatural sorts values in place: numerically when every value parses
// as a number, lexically otherwise.
func SortNatural(values []string) {
	numeric := allNumeric(values)
	sort.SliceStable(values, func(i, j int) bool {
		return naturalLess(values[i], values[j], numeric)
	})
}

func naturalLess(a, b string, numeric bool) bool {
	if numeric {
		fa, _ := strconv.ParseFloat(a, 64)
		fb, _ := strconv.ParseFloat(b, 64)
		if fa != fb {
			return fa < fb
		}
	}
	return a < b
}

func allNumeric(values []string) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			return false
		}
	}
	return true
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// FormatNumber renders v for table cells. Whole numbers print without
// decimals, others with the given precision. NaN prints as "NaN".
func FormatNumber(v float64, places int) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', places, 64)
}

// RoundTo rounds v to the given number of decimal places, halves to even.
// NaN stays NaN.
func RoundTo(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.RoundToEven(v*p) / p
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return RoundTo(v, 2)
}

// UniqueValues returns distinct non-empty values for a dimension across a
// view, in first-seen order.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}
