package engine

// ============================================================================
// FILTERS — Generic Dimension-Based Filtering via RecordView
// ============================================================================
// Single-pass filter: checks ALL dimension constraints per record in one loop.
// Returns a SubView (index list into parent) — zero data copy.
// Values compare exactly; "1" and "01" are different generations.
// ============================================================================

// ApplyFilters returns a view of records matching all dimension filters.
// Dimensions are AND-combined; values within a dimension are OR-combined.
// Empty filter = no restriction (returns original view).
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	sets := make(map[string]map[string]bool)
	for dim, allowed := range filters.Dimensions {
		if len(allowed) > 0 {
			sets[dim] = toSet(allowed)
		}
	}

	// Single pass — record passes if it matches ALL dimension filters
	return Where(view, func(v RecordView, i int) bool {
		for dim, set := range sets {
			if !set[v.Dimension(i, dim)] {
				return false
			}
		}
		return true
	})
}

// Equals builds a single-dimension filter.
func Equals(dimension string, values ...string) Filters {
	return Filters{Dimensions: map[string][]string{dimension: values}}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
