package catalog

import "strings"

// Filter narrows groups to those whose root name contains the query,
// case insensitively. An empty query returns the input untouched.
// A group is kept or dropped as a whole; children are never filtered
// individually and the input is never mutated
func Filter(groups []Group, query string) []Group {
	if query == "" {
		return groups
	}
	query = strings.ToLower(query)
	matched := make([]Group, 0, len(groups))
	for _, group := range groups {
		if strings.Contains(strings.ToLower(group.Root.Name), query) {
			matched = append(matched, group)
		}
	}
	return matched
}
