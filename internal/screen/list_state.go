package screen

import (
	"net/url"
	"strconv"
	"strings"
)

type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusActive   StatusFilter = "active"
	StatusInactive StatusFilter = "inactive"
)

func ParseStatus(s string) StatusFilter {
	switch StatusFilter(s) {
	case StatusActive, StatusInactive:
		return StatusFilter(s)
	}
	return StatusAll
}

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

func (o SortOrder) Flip() SortOrder {
	if o == Asc {
		return Desc
	}
	return Asc
}

// ListState is the filter/sort/page state of one list screen. Every method
// returns a new value; the page resets to 1 whenever search, status or sort
// changes.
type ListState struct {
	Search     string
	Status     StatusFilter
	SortKey    string
	SortOrder  SortOrder
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

func NewListState(limit int, sortKey string) ListState {
	if limit <= 0 {
		limit = 10
	}
	return ListState{
		Status:    StatusAll,
		SortKey:   sortKey,
		SortOrder: Desc,
		Page:      1,
		Limit:     limit,
	}
}

// ParseListState reads the browser query. Missing or malformed values keep
// the defaults; sortable restricts which keys may be sorted on.
func ParseListState(q url.Values, defaults ListState, sortable ...string) ListState {
	s := defaults
	s.Search = strings.TrimSpace(q.Get("search"))
	if v := q.Get("status"); v != "" {
		s.Status = ParseStatus(v)
	}
	if key := q.Get("sort"); key != "" && allowed(key, sortable) {
		s.SortKey = key
		if SortOrder(q.Get("order")) == Asc {
			s.SortOrder = Asc
		} else {
			s.SortOrder = Desc
		}
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n >= 1 {
		s.Page = n
	} else {
		s.Page = 1
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n >= 1 && n <= 100 {
		s.Limit = n
	}
	return s
}

func allowed(key string, sortable []string) bool {
	if len(sortable) == 0 {
		return true
	}
	for _, k := range sortable {
		if k == key {
			return true
		}
	}
	return false
}

func (s ListState) WithSearch(search string) ListState {
	s.Search = strings.TrimSpace(search)
	s.Page = 1
	return s
}

func (s ListState) WithStatus(status StatusFilter) ListState {
	s.Status = status
	s.Page = 1
	return s
}

// ToggleSort flips the order when key is already the sort key, otherwise
// sorts descending on key.
func (s ListState) ToggleSort(key string) ListState {
	if s.SortKey == key {
		s.SortOrder = s.SortOrder.Flip()
	} else {
		s.SortKey = key
		s.SortOrder = Desc
	}
	s.Page = 1
	return s
}

// GoTo clamps page into [1, TotalPages]. Before a result is known only the
// lower bound applies.
func (s ListState) GoTo(page int) ListState {
	if s.TotalPages >= 1 && page > s.TotalPages {
		page = s.TotalPages
	}
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

func (s ListState) Next() ListState { return s.GoTo(s.Page + 1) }

func (s ListState) Prev() ListState { return s.GoTo(s.Page - 1) }

func (s ListState) CanPrev() bool { return s.TotalPages > 0 && s.Page > 1 }

func (s ListState) CanNext() bool { return s.TotalPages > 0 && s.Page < s.TotalPages }

// WithResult records the server's totals and pulls the page back in range.
func (s ListState) WithResult(total, totalPages int) ListState {
	s.Total = total
	s.TotalPages = totalPages
	return s.GoTo(s.Page)
}

// Query is the backend list query.
func (s ListState) Query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(s.Page))
	q.Set("limit", strconv.Itoa(s.Limit))
	if s.Search != "" {
		q.Set("search", s.Search)
	}
	if s.SortKey != "" {
		q.Set("sortBy", s.SortKey)
		q.Set("sortOrder", string(s.SortOrder))
	}
	switch s.Status {
	case StatusActive:
		q.Set("isActive", "true")
	case StatusInactive:
		q.Set("isActive", "false")
	}
	return q
}

// URLQuery is the browser query that reproduces this state.
func (s ListState) URLQuery() url.Values {
	q := url.Values{}
	if s.Page > 1 {
		q.Set("page", strconv.Itoa(s.Page))
	}
	q.Set("limit", strconv.Itoa(s.Limit))
	if s.Search != "" {
		q.Set("search", s.Search)
	}
	if s.Status != "" && s.Status != StatusAll {
		q.Set("status", string(s.Status))
	}
	if s.SortKey != "" {
		q.Set("sort", s.SortKey)
		q.Set("order", string(s.SortOrder))
	}
	return q
}

func (s ListState) Href(base string) string {
	return base + "?" + s.URLQuery().Encode()
}

// SortHref is the link a column header points at.
func (s ListState) SortHref(base, key string) string {
	return s.ToggleSort(key).Href(base)
}

func (s ListState) PageHref(base string, page int) string {
	return s.GoTo(page).Href(base)
}

// SortIndicator is "asc", "desc" or "" for a column header.
func (s ListState) SortIndicator(key string) string {
	if s.SortKey != key {
		return ""
	}
	return string(s.SortOrder)
}

// Slice applies the state to an in-memory list for screens that filter
// client-side. It returns the page of items and records the totals.
func Slice[T any](s ListState, items []T) ([]T, ListState) {
	total := len(items)
	pages := 0
	if total > 0 {
		pages = (total + s.Limit - 1) / s.Limit
	}
	s = s.WithResult(total, pages)
	if total == 0 {
		return []T{}, s
	}
	start := (s.Page - 1) * s.Limit
	end := start + s.Limit
	if end > total {
		end = total
	}
	return items[start:end], s
}
