package query

import (
	"net/url"
	"strconv"
)

// MaxPageSize caps how many records a single page may return. Oversized
// requests are clamped, never rejected.
const MaxPageSize = 20

// DefaultPageSize is used when the client does not ask for a page size.
const DefaultPageSize = 10

// Parameters are the collection query parameters shared by every listable
// resource: a page window, optional filters, an order-by expression and an
// optional field list for shaping.
type Parameters struct {
	PageNumber  int
	PageSize    int
	Genre       string
	SearchQuery string
	OrderBy     string
	Fields      string
}

// DefaultParameters returns the parameters for an unqualified listing of a
// resource whose default sort field is orderBy.
func DefaultParameters(orderBy string) Parameters {
	return Parameters{
		PageNumber: 1,
		PageSize:   DefaultPageSize,
		OrderBy:    orderBy,
	}
}

// Clamp forces the page window into the valid range [1, MaxPageSize] for
// size and [1, ∞) for number. Out-of-range values are adjusted silently.
func (p *Parameters) Clamp() {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 1
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// WithPage returns a copy of p pointing at a different page. Every other
// parameter is carried over unchanged so pagination links never drop the
// client's filters, sort or field list.
func (p Parameters) WithPage(pageNumber int) Parameters {
	p.PageNumber = pageNumber
	return p
}

// Values re-serialises the parameters as a URL query string. Optional
// parameters are emitted only when set. url.Values.Encode sorts keys, so
// identical parameters always produce byte-identical query strings.
func (p Parameters) Values() url.Values {
	values := url.Values{}
	values.Set("pageNumber", strconv.Itoa(p.PageNumber))
	values.Set("pageSize", strconv.Itoa(p.PageSize))
	if p.Genre != "" {
		values.Set("genre", p.Genre)
	}
	if p.SearchQuery != "" {
		values.Set("searchQuery", p.SearchQuery)
	}
	if p.OrderBy != "" {
		values.Set("orderBy", p.OrderBy)
	}
	if p.Fields != "" {
		values.Set("fields", p.Fields)
	}
	return values
}
