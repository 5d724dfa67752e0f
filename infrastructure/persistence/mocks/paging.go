package mocks

import (
	"strings"

	"backoffice/domain/shared"
)

// page cuts one page out of an already filtered and sorted slice.
func page[T any](all []T, criteria shared.ListCriteria) ([]T, int64) {
	c := criteria.Normalize()
	total := int64(len(all))
	start := c.Offset()
	if start >= len(all) {
		return []T{}, total
	}
	end := min(start+c.PageSize, len(all))
	return all[start:end], total
}

func containsFold(search string, fields ...string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}
