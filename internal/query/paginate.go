package query

import "fmt"

// FilterOp selects how a filter value is matched against its columns.
type FilterOp int

const (
	// FilterEquals matches the whole column value, ignoring case.
	FilterEquals FilterOp = iota
	// FilterContains matches a substring of the column value, ignoring case.
	FilterContains
)

// Filter is one predicate of a collection query. A filter with several
// columns matches when any of them matches; separate filters are combined
// with AND by the store.
type Filter struct {
	Columns []string
	Op      FilterOp
	Value   string
}

// Plan is a validated, storage-safe collection query. Every column named in
// Filters and Sort comes from a registered mapping or a code constant,
// never from raw client input, so the store may interpolate them freely.
type Plan struct {
	Filters    []Filter
	Sort       []SortKey
	PageNumber int
	PageSize   int
}

// Limit returns the page window size.
func (p Plan) Limit() int { return p.PageSize }

// Offset returns the number of records to skip before the page window.
func (p Plan) Offset() int { return (p.PageNumber - 1) * p.PageSize }

// Page carries one page of results plus the metadata needed for pagination
// links and the X-Pagination header. It is built once per request from an
// already-windowed slice and never mutated afterwards.
type Page[T any] struct {
	Items       []T
	TotalCount  int
	PageSize    int
	CurrentPage int
	TotalPages  int
}

// NewPage computes pagination metadata for an already-windowed slice.
// A page number beyond the last page is fine: the slice is simply empty
// while the metadata still reflects the true totals. A page size below 1
// can only mean parameter clamping was bypassed, so it is reported as an
// internal error rather than risking a zero division.
func NewPage[T any](items []T, totalCount, pageNumber, pageSize int) (Page[T], error) {
	if pageSize < 1 {
		return Page[T]{}, fmt.Errorf("page size %d is below 1", pageSize)
	}

	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}

	return Page[T]{
		Items:       items,
		TotalCount:  totalCount,
		PageSize:    pageSize,
		CurrentPage: pageNumber,
		TotalPages:  totalPages,
	}, nil
}

// HasPrevious reports whether a page exists before the current one.
func (p Page[T]) HasPrevious() bool { return p.CurrentPage > 1 }

// HasNext reports whether a page exists after the current one.
func (p Page[T]) HasNext() bool { return p.CurrentPage < p.TotalPages }

// Metadata is the pagination summary serialised into the X-Pagination
// response header.
type Metadata struct {
	TotalCount  int `json:"totalCount"`
	PageSize    int `json:"pageSize"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// Metadata returns the page's pagination summary.
func (p Page[T]) Metadata() Metadata {
	return Metadata{
		TotalCount:  p.TotalCount,
		PageSize:    p.PageSize,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
	}
}
