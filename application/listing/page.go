// Package listing carries one page of a listing back to the API layer.
package listing

import "backoffice/domain/shared"

type Page[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// New maps rows with convert; criteria must be the criteria the rows were
// queried with.
func New[S, T any](rows []S, total int64, criteria shared.ListCriteria, convert func(S) T) Page[T] {
	c := criteria.Normalize()
	items := make([]T, len(rows))
	for i, row := range rows {
		items[i] = convert(row)
	}
	return Page[T]{Items: items, Page: c.Page, PageSize: c.PageSize, Total: total}
}

// TotalPages is at least 1 so an empty listing still renders one page.
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 || p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PageSize) - 1) / int64(p.PageSize))
}
