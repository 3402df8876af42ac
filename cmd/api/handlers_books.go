// cmd/api/handlers_books.go
// This file contains the HTTP request handlers for the books resource.
// Books are always scoped to an author; every handler first checks that the
// author exists.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/rsen253/library-api/internal/data"
	"github.com/rsen253/library-api/internal/query"
	"github.com/rsen253/library-api/internal/validator"
)

// listBooksForAuthorHandler handles GET /v1/authors/:id/books.
// The projection pipeline is the same one the author listing uses: validate
// order-by and fields, build a plan, page, shape, link.
func (app *applicationDependencies) listBooksForAuthorHandler(w http.ResponseWriter, r *http.Request) {
	authorID, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	params := app.readQueryParameters(r, "title")

	if !app.registry.ValidOrderBy(data.BookViewType, data.BookEntityType, params.OrderBy) {
		app.unknownFieldResponse(w, r, "orderBy", params.OrderBy)
		return
	}
	if !data.BookFields.HasFields(params.Fields) {
		app.unknownFieldResponse(w, r, "fields", params.Fields)
		return
	}

	exists, err := app.models.Authors.Exists(authorID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !exists {
		app.notFoundResponse(w, r)
		return
	}

	mappings, err := app.registry.Resolve(data.BookViewType, data.BookEntityType)
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
		Filters:    data.BookFilters(params.SearchQuery),
		Sort:       sortKeys,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}

	page, err := app.models.Books.GetAllForAuthor(authorID, plan)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	views := make([]data.BookView, 0, len(page.Items))
	for _, book := range page.Items {
		views = append(views, data.NewBookView(book))
	}
	shaped, err := query.ShapeAll(data.BookFields, views, params.Fields)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	for i, s := range shaped {
		s.Set("links", app.bookLinks(authorID, views[i].ID, params.Fields))
	}

	basePath := fmt.Sprintf("/v1/authors/%s/books", authorID)
	links := app.collectionLinks(basePath, params, page.HasPrevious(), page.HasNext())

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

// showBookForAuthorHandler handles GET /v1/authors/:id/books/:bookID.
func (app *applicationDependencies) showBookForAuthorHandler(w http.ResponseWriter, r *http.Request) {
	authorID, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	bookID, err := app.readUUIDParam(r, "bookID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	fields := app.readString(r.URL.Query(), "fields", "")
	if !data.BookFields.HasFields(fields) {
		app.unknownFieldResponse(w, r, "fields", fields)
		return
	}

	book, err := app.models.Books.Get(authorID, bookID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	view := data.NewBookView(book)
	shaped, err := data.BookFields.Shape(view, fields)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	shaped.Set("links", app.bookLinks(authorID, view.ID, fields))

	err = app.writeJSON(w, http.StatusOK, shaped, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createBookForAuthorHandler handles POST /v1/authors/:id/books.
// Responds 404 when the author does not exist and 422 when validation fails
// (a book's description must differ from its title).
func (app *applicationDependencies) createBookForAuthorHandler(w http.ResponseWriter, r *http.Request) {
	authorID, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input data.BookInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	data.ValidateBookInput(v, &input)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	exists, err := app.models.Authors.Exists(authorID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !exists {
		app.notFoundResponse(w, r)
		return
	}

	book := &data.Book{
		AuthorID:    authorID,
		Title:       input.Title,
		Description: input.Description,
	}

	err = app.models.Books.Insert(book)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeCreatedBook(w, r, book)
}

// updateBookForAuthorHandler handles PUT /v1/authors/:id/books/:bookID.
// A PUT against a book that does not exist yet upserts it under the
// client-chosen id, responding 201; an existing book is fully replaced and
// returned with 200.
func (app *applicationDependencies) updateBookForAuthorHandler(w http.ResponseWriter, r *http.Request) {
	authorID, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	bookID, err := app.readUUIDParam(r, "bookID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input data.BookInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	data.ValidateBookInput(v, &input)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	exists, err := app.models.Authors.Exists(authorID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !exists {
		app.notFoundResponse(w, r)
		return
	}

	book, err := app.models.Books.Get(authorID, bookID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			// Upsert: the client PUT a book that does not exist yet, so we
			// create it under the id they chose.
			book = &data.Book{
				ID:          bookID,
				AuthorID:    authorID,
				Title:       input.Title,
				Description: input.Description,
			}
			if err := app.models.Books.Insert(book); err != nil {
				app.serverErrorResponse(w, r, err)
				return
			}
			app.writeCreatedBook(w, r, book)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	book.Title = input.Title
	book.Description = input.Description

	err = app.models.Books.Update(book)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	view := data.NewBookView(book)
	shaped, err := data.BookFields.Shape(view, "")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	shaped.Set("links", app.bookLinks(authorID, view.ID, ""))

	err = app.writeJSON(w, http.StatusOK, shaped, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// partiallyUpdateBookForAuthorHandler handles PATCH /v1/authors/:id/books/:bookID.
// The body is a JSON Patch document (RFC 6902) applied to the book's
// updatable fields. Patching a book that does not exist yet applies the
// document to an empty representation and upserts it under the client-chosen
// id, responding 201; an existing book is updated in place with 204.
func (app *applicationDependencies) partiallyUpdateBookForAuthorHandler(w http.ResponseWriter, r *http.Request) {
	authorID, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	bookID, err := app.readUUIDParam(r, "bookID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1_048_576))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	patch, err := jsonpatch.DecodePatch(body)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid JSON Patch document: %w", err))
		return
	}

	exists, err := app.models.Authors.Exists(authorID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !exists {
		app.notFoundResponse(w, r)
		return
	}

	var input data.BookInput
	upserting := false

	book, err := app.models.Books.Get(authorID, bookID)
	switch {
	case err == nil:
		input = data.BookInput{Title: book.Title, Description: book.Description}
	case errors.Is(err, data.ErrRecordNotFound):
		// Upsert: the patch is applied to an empty representation and the
		// result stored under the id the client chose.
		upserting = true
	default:
		app.serverErrorResponse(w, r, err)
		return
	}

	if err := applyBookPatch(patch, &input); err != nil {
		app.failedValidationResponse(w, r, map[string]string{"patch": err.Error()})
		return
	}

	v := validator.New()
	data.ValidateBookInput(v, &input)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	if upserting {
		book = &data.Book{
			ID:          bookID,
			AuthorID:    authorID,
			Title:       input.Title,
			Description: input.Description,
		}
		if err := app.models.Books.Insert(book); err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		app.writeCreatedBook(w, r, book)
		return
	}

	book.Title = input.Title
	book.Description = input.Description

	err = app.models.Books.Update(book)
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

// applyBookPatch applies a JSON Patch document to a book's updatable fields
// by round-tripping them through their JSON form.
func applyBookPatch(patch jsonpatch.Patch, input *data.BookInput) error {
	doc, err := json.Marshal(input)
	if err != nil {
		return err
	}
	patched, err := patch.Apply(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(patched, input)
}

// deleteBookForAuthorHandler handles DELETE /v1/authors/:id/books/:bookID.
func (app *applicationDependencies) deleteBookForAuthorHandler(w http.ResponseWriter, r *http.Request) {
	authorID, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	bookID, err := app.readUUIDParam(r, "bookID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.models.Books.Delete(authorID, bookID)
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

// writeCreatedBook responds 201 Created with the linked representation of a
// freshly inserted book and a Location header for it.
func (app *applicationDependencies) writeCreatedBook(w http.ResponseWriter, r *http.Request, book *data.Book) {
	view := data.NewBookView(book)
	shaped, err := data.BookFields.Shape(view, "")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	shaped.Set("links", app.bookLinks(book.AuthorID, view.ID, ""))

	headers := http.Header{}
	headers.Set("Location", fmt.Sprintf("/v1/authors/%s/books/%s", book.AuthorID, view.ID))

	err = app.writeJSON(w, http.StatusCreated, shaped, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
