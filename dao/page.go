package dao

// Page is one 1-indexed slice of a listing. Requests beyond the last page
// come back with an empty Items slice rather than an error.
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	Total      int64
	TotalPages int
}

// HasPrev reports whether an earlier page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// Prev is the previous page number, for pagination links.
func (p Page[T]) Prev() int { return p.Number - 1 }

// Next is the next page number, for pagination links.
func (p Page[T]) Next() int { return p.Number + 1 }

// normalizePage clamps page numbers below 1 up to the first page.
func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// pageOffset converts a 1-indexed page number into a row offset.
func pageOffset(page, size int) int {
	return (normalizePage(page) - 1) * size
}

// totalPages rounds the row count up to whole pages.
func totalPages(total int64, size int) int {
	if total <= 0 {
		return 0
	}
	n := int(total) / size
	if int(total)%size != 0 {
		n++
	}
	return n
}

func newPage[T any](items []T, page, size int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Number:     normalizePage(page),
		Size:       size,
		Total:      total,
		TotalPages: totalPages(total, size),
	}
}
