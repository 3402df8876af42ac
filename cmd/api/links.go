// cmd/api/links.go
// Hypermedia link builders. Item links describe the actions available on a
// single resource; collection links describe pagination. Link generation is
// deterministic: identical inputs always produce identical link sets.
package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/rsen253/library-api/internal/query"
)

// authorLinks builds the links for a single author. When the representation
// was shaped, self carries the field list so following the link reproduces
// the same shape.
func (app *applicationDependencies) authorLinks(id uuid.UUID, fields string) []query.Link {
	base := fmt.Sprintf("/v1/authors/%s", id)
	self := base
	if strings.TrimSpace(fields) != "" {
		self += "?fields=" + url.QueryEscape(fields)
	}
	books := base + "/books"

	return []query.Link{
		query.NewLink(self, "self", http.MethodGet),
		query.NewLink(base, "delete_author", http.MethodDelete),
		query.NewLink(books, "books", http.MethodGet),
		query.NewLink(books, "create_book_for_author", http.MethodPost),
	}
}

// bookLinks builds the links for a single book, scoped to its author.
func (app *applicationDependencies) bookLinks(authorID, id uuid.UUID, fields string) []query.Link {
	base := fmt.Sprintf("/v1/authors/%s/books/%s", authorID, id)
	self := base
	if strings.TrimSpace(fields) != "" {
		self += "?fields=" + url.QueryEscape(fields)
	}

	return []query.Link{
		query.NewLink(self, "self", http.MethodGet),
		query.NewLink(base, "update_book", http.MethodPut),
		query.NewLink(base, "delete_book", http.MethodDelete),
	}
}

// collectionLinks builds the navigation links for a paginated collection.
// Page links re-serialise the full parameter set with only the page number
// shifted, so filters, sort and field list are never dropped while paging.
// Self comes first; previousPage and nextPage appear only when those pages
// exist.
func (app *applicationDependencies) collectionLinks(basePath string, p query.Parameters, hasPrevious, hasNext bool) []query.Link {
	links := []query.Link{
		query.NewLink(basePath+"?"+p.Values().Encode(), "self", http.MethodGet),
	}
	if hasPrevious {
		links = append(links,
			query.NewLink(basePath+"?"+p.WithPage(p.PageNumber-1).Values().Encode(), "previousPage", http.MethodGet))
	}
	if hasNext {
		links = append(links,
			query.NewLink(basePath+"?"+p.WithPage(p.PageNumber+1).Values().Encode(), "nextPage", http.MethodGet))
	}
	return links
}
