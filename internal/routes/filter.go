package routes

import (
	"strings"
)

// Criteria defines which records survive the filter stage.
// An empty string imposes no constraint.
type Criteria struct {
	// Name must be contained in the route name.
	Name string

	// Path must be contained in the route URI.
	Path string

	// Method must be contained in the pipe-joined method string,
	// so "GET" matches "GET|HEAD".
	Method string

	// ExceptPath drops records whose URI contains any of the entries.
	ExceptPath []string
}

// Empty reports whether the criteria keep every record.
func (c Criteria) Empty() bool {
	return c.Name == "" && c.Path == "" && c.Method == "" && len(c.ExceptPath) == 0
}

// Filter returns the records matching every supplied criterion, in input order.
// Matching is case-sensitive substring containment.
func Filter(records []Record, c Criteria) []Record {
	filtered := make([]Record, 0, len(records))
	for _, rec := range records {
		if !c.Match(rec) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

// Match reports whether rec satisfies the criteria.
func (c Criteria) Match(rec Record) bool {
	if !containsIfSet(rec.Name, c.Name) {
		return false
	}
	if !containsIfSet(rec.URI, c.Path) {
		return false
	}
	if !containsIfSet(rec.Method, c.Method) {
		return false
	}
	return !excludedPath(rec.URI, c.ExceptPath)
}

func containsIfSet(value, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(value, substr)
}

// excludedPath returns true if uri contains any of the excluded fragments.
func excludedPath(uri string, excludes []string) bool {
	for _, exclude := range excludes {
		if exclude == "" {
			continue
		}
		if strings.Contains(uri, exclude) {
			return true
		}
	}
	return false
}
