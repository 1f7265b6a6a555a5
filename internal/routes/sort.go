package routes

import (
	"slices"
	"sort"
)

// SortSpec selects the ordering of the listing.
type SortSpec struct {
	Field   Field
	Reverse bool
}

// DefaultSort orders by URI ascending.
func DefaultSort() SortSpec {
	return SortSpec{Field: FieldURI}
}

// Sort returns a copy of records stably ordered by s.Field.
// Reverse flips the sorted slice as a whole afterwards, so records sharing a
// key end up in reverse input order rather than input order.
func Sort(records []Record, s SortSpec) []Record {
	sorted := slices.Clone(records)
	if sorted == nil {
		sorted = []Record{}
	}

	field := s.Field
	if field == "" {
		field = FieldURI
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value(field) < sorted[j].Value(field)
	})

	if s.Reverse {
		slices.Reverse(sorted)
	}
	return sorted
}
