package entity

// Page is one page of a remote collection plus the server's pagination totals.
type Page[T any] struct {
	Items      []T
	Total      int
	TotalPages int
}

// Len returns the number of items on the page.
func (p *Page[T]) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Items)
}
