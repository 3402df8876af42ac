// cmd/api/handlers_root.go
package main

import (
	"net/http"

	"github.com/rsen253/library-api/internal/query"
)

// rootHandler handles GET /v1.
// It returns the API's entry-point link document so clients can discover
// the available resources without hard-coding URLs.
func (app *applicationDependencies) rootHandler(w http.ResponseWriter, r *http.Request) {
	links := []query.Link{
		query.NewLink("/v1", "self", http.MethodGet),
		query.NewLink("/v1/authors", "authors", http.MethodGet),
		query.NewLink("/v1/authors", "create_author", http.MethodPost),
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"links": links}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
