// cmd/api/handlers_author_collections.go
// Handlers for creating and fetching several authors in one request.
package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/rsen253/library-api/internal/data"
	"github.com/rsen253/library-api/internal/validator"
)

// createAuthorCollectionHandler handles POST /v1/authorcollections.
// It reads a JSON array of author inputs, validates every element, inserts
// them all, and responds 201 Created with a Location header pointing at the
// collection of the new ids.
func (app *applicationDependencies) createAuthorCollectionHandler(w http.ResponseWriter, r *http.Request) {
	var inputs []data.CreateAuthorInput

	err := app.readJSON(w, r, &inputs)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if len(inputs) == 0 {
		app.badRequestResponse(w, r, errors.New("body must contain at least one author"))
		return
	}

	// Validate every element before inserting any: creation is all-or-nothing.
	v := validator.New()
	for i := range inputs {
		elem := validator.New()
		data.ValidateAuthorInput(elem, &inputs[i])
		for key, message := range elem.Errors {
			v.AddError(fmt.Sprintf("authors[%d].%s", i, key), message)
		}
	}
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	authors := make([]*data.Author, 0, len(inputs))
	for i := range inputs {
		authors = append(authors, &data.Author{
			FirstName:   inputs[i].FirstName,
			LastName:    inputs[i].LastName,
			DateOfBirth: inputs[i].DateOfBirth,
			Genre:       inputs[i].Genre,
		})
	}

	// One transaction for the whole batch: a failure part-way through must
	// not leave a partial collection behind.
	if err := app.models.Authors.InsertAll(authors); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	views := make([]data.AuthorView, 0, len(authors))
	ids := make([]string, 0, len(authors))
	for _, author := range authors {
		views = append(views, data.NewAuthorView(author))
		ids = append(ids, author.ID.String())
	}

	headers := http.Header{}
	headers.Set("Location", "/v1/authorcollections/"+strings.Join(ids, ","))

	err = app.writeJSON(w, http.StatusCreated, envelope{"value": views}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showAuthorCollectionHandler handles GET /v1/authorcollections/:ids.
// The :ids parameter is a comma-separated list of author ids. The whole
// request fails with 404 when any requested author is missing: a partial
// collection is never returned.
func (app *applicationDependencies) showAuthorCollectionHandler(w http.ResponseWriter, r *http.Request) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("ids")

	tokens := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(tokens))
	normalised := make([]string, 0, len(tokens))
	for _, token := range tokens {
		id, err := uuid.Parse(strings.TrimSpace(token))
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid author id %q", strings.TrimSpace(token)))
			return
		}
		ids = append(ids, id)
		normalised = append(normalised, id.String())
	}
	if !validator.Unique(normalised) {
		app.badRequestResponse(w, r, errors.New("author ids must be distinct"))
		return
	}

	authors, err := app.models.Authors.GetByIDs(ids)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if len(authors) != len(ids) {
		app.notFoundResponse(w, r)
		return
	}

	views := make([]data.AuthorView, 0, len(authors))
	for _, author := range authors {
		views = append(views, data.NewAuthorView(author))
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"value": views}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
