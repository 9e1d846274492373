// Package listing filters and paginates fetched lists on the client.
package listing

import "strings"

// Page sizes per screen.
const (
	NotesPerPage      = 3
	CategoriesPerPage = 4
	UsersPerPage      = 3
)

type Page[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	Total      int
}

func (p Page[T]) HasPrev() bool { return p.Page > 1 }

func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// Filter keeps the items matching pred, preserving order.
func Filter[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// Paginate returns page (1-based) of items. The page is clamped into
// [1, TotalPages]; an empty list has one empty page.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage < 1 {
		perPage = 1
	}
	total := len(items)
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	page = min(max(page, 1), pages)

	start := (page - 1) * perPage
	end := min(start+perPage, total)
	return Page[T]{
		Items:      items[start:end:end],
		Page:       page,
		TotalPages: pages,
		Total:      total,
	}
}

// ContainsFold reports whether substr is within s, ignoring case. An empty
// substr matches everything.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(substr)))
}
