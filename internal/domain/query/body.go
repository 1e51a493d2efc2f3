package query

// Order is a sort direction.
type Order string

// Sort directions.
const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// IsValid reports whether o is a known direction.
func (o Order) IsValid() bool {
	return o == OrderAsc || o == OrderDesc
}

// SortField orders results by a sortable index attribute.
type SortField struct {
	Field string
	Order Order
}

// Window is the (offset, limit) pair of one result page.
type Window struct {
	Offset int
	Limit  int
}

// PageWindow converts a 1-based page and a page size into a Window.
func PageWindow(page, size int) Window {
	return Window{Offset: (page - 1) * size, Limit: size}
}

// Body is a complete search request: match clause, optional sort, optional page window.
// A nil Query matches everything. Without a Window the engine applies its default limit.
type Body struct {
	Query  Clause
	Sort   *SortField
	Window *Window
}

// WithoutPagination returns a copy of b without its page window.
func (b Body) WithoutPagination() Body {
	b.Window = nil
	return b
}

// Paginate returns a copy of b restricted to w.
func (b Body) Paginate(w Window) Body {
	b.Window = &w
	return b
}
