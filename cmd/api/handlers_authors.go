// cmd/api/handlers_authors.go
// This file contains the HTTP request handlers for the authors resource.
// Each handler is a method on *applicationDependencies so it has access to
// the logger, database models and the property mapping registry.
package main

import (
	"errors"
	"net/http"

	"github.com/rsen253/library-api/internal/data"
	"github.com/rsen253/library-api/internal/query"
	"github.com/rsen253/library-api/internal/validator"
)

// listAuthorsHandler handles GET /v1/authors.
// It validates the order-by expression and field list, builds a query plan,
// fetches one page of authors, shapes each result, attaches item and
// collection links, and returns the envelope with an X-Pagination header.
func (app *applicationDependencies) listAuthorsHandler(w http.ResponseWriter, r *http.Request) {
	params := app.readQueryParameters(r, "name")

	// Both checks run before the store is touched, so an invalid request
	// never costs a database round-trip.
	if !app.registry.ValidOrderBy(data.AuthorViewType, data.AuthorEntityType, params.OrderBy) {
		app.unknownFieldResponse(w, r, "orderBy", params.OrderBy)
		return
	}
	if !data.AuthorFields.HasFields(params.Fields) {
		app.unknownFieldResponse(w, r, "fields", params.Fields)
		return
	}

	mappings, err := app.registry.Resolve(data.AuthorViewType, data.AuthorEntityType)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	sortKeys, err := mappings.SortKeys(params.OrderBy)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	plan := query.Plan{
		Filters:    data.AuthorFilters(params.Genre, params.SearchQuery),
		Sort:       sortKeys,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}

	page, err := app.models.Authors.GetAll(plan)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// Shape every author with the same field list and attach item links.
	views := make([]data.AuthorView, 0, len(page.Items))
	for _, author := range page.Items {
		views = append(views, data.NewAuthorView(author))
	}
	shaped, err := query.ShapeAll(data.AuthorFields, views, params.Fields)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	for i, s := range shaped {
		s.Set("links", app.authorLinks(views[i].ID, params.Fields))
	}

	links := app.collectionLinks("/v1/authors", params, page.HasPrevious(), page.HasNext())

	headers, err := paginationHeader(page.Metadata())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"value": shaped, "links": links}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showAuthorHandler handles GET /v1/authors/:id.
// The response is the shaped author representation with a "links" field
// injected after the data fields. Responds 400 for an unknown field in the
// fields parameter and 404 when the author does not exist.
func (app *applicationDependencies) showAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	fields := app.readString(r.URL.Query(), "fields", "")
	if !data.AuthorFields.HasFields(fields) {
		app.unknownFieldResponse(w, r, "fields", fields)
		return
	}

	author, err := app.models.Authors.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	view := data.NewAuthorView(author)
	shaped, err := data.AuthorFields.Shape(view, fields)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	shaped.Set("links", app.authorLinks(view.ID, fields))

	err = app.writeJSON(w, http.StatusOK, shaped, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createAuthorHandler handles POST /v1/authors.
// It reads a JSON body with the new author's details, validates it, inserts
// a record, and responds 201 Created with the linked representation and a
// Location header.
func (app *applicationDependencies) createAuthorHandler(w http.ResponseWriter, r *http.Request) {
	var input data.CreateAuthorInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	data.ValidateAuthorInput(v, &input)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	author := &data.Author{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DateOfBirth: input.DateOfBirth,
		Genre:       input.Genre,
	}

	// Insert assigns the id, which the links below depend on.
	err = app.models.Authors.Insert(author)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	view := data.NewAuthorView(author)
	shaped, err := data.AuthorFields.Shape(view, "")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	shaped.Set("links", app.authorLinks(view.ID, ""))

	headers := http.Header{}
	headers.Set("Location", "/v1/authors/"+view.ID.String())

	err = app.writeJSON(w, http.StatusCreated, shaped, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteAuthorHandler handles DELETE /v1/authors/:id.
// Deleting an author also removes their books. Responds 204 No Content on
// success and 404 when no author with that id exists.
func (app *applicationDependencies) deleteAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.models.Authors.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
