// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router
// wrapped in the recoverPanic, rateLimit and CORS middlewares.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → rateLimit → CORS → router
//
// Current endpoints:
//
//	GET    /v1                                   - API root link document
//	GET    /v1/authors                           - list authors (paginated, filtered, shaped)
//	POST   /v1/authors                           - create a new author
//	GET    /v1/authors/:id                       - retrieve a single author (shaped)
//	DELETE /v1/authors/:id                       - delete an author and their books
//	POST   /v1/authorcollections                 - create several authors at once
//	GET    /v1/authorcollections/:ids            - retrieve authors by id list
//	GET    /v1/authors/:id/books                 - list an author's books (paginated, shaped)
//	POST   /v1/authors/:id/books                 - create a book for an author
//	GET    /v1/authors/:id/books/:bookID         - retrieve a single book (shaped)
//	PUT    /v1/authors/:id/books/:bookID         - fully update a book, upserting when absent
//	PATCH  /v1/authors/:id/books/:bookID         - apply a JSON Patch to a book, upserting when absent
//	DELETE /v1/authors/:id/books/:bookID         - delete a book
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1", app.rootHandler)

	// Author routes
	router.HandlerFunc(http.MethodGet, "/v1/authors", app.listAuthorsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/authors", app.createAuthorHandler)
	router.HandlerFunc(http.MethodGet, "/v1/authors/:id", app.showAuthorHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/authors/:id", app.deleteAuthorHandler)

	// Author collection routes live on their own path segment because
	// httprouter cannot mix the ":id" wildcard with a static sibling.
	router.HandlerFunc(http.MethodPost, "/v1/authorcollections", app.createAuthorCollectionHandler)
	router.HandlerFunc(http.MethodGet, "/v1/authorcollections/:ids", app.showAuthorCollectionHandler)

	// Book routes, always scoped to an author
	router.HandlerFunc(http.MethodGet, "/v1/authors/:id/books", app.listBooksForAuthorHandler)
	router.HandlerFunc(http.MethodPost, "/v1/authors/:id/books", app.createBookForAuthorHandler)
	router.HandlerFunc(http.MethodGet, "/v1/authors/:id/books/:bookID", app.showBookForAuthorHandler)
	router.HandlerFunc(http.MethodPut, "/v1/authors/:id/books/:bookID", app.updateBookForAuthorHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/authors/:id/books/:bookID", app.partiallyUpdateBookForAuthorHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/authors/:id/books/:bookID", app.deleteBookForAuthorHandler)

	// Wrap with middleware: recoverPanic is outermost so it catches panics
	// from rateLimit and the router alike.
	return app.recoverPanic(app.rateLimit(app.enableCORS(router)))
}
