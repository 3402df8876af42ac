// cmd/api/helpers.go
// This file contains general-purpose helper functions for the application.
// Error-response helpers live in errors.go; only non-error utilities are here.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/rsen253/library-api/internal/query"
)

// envelope is the top-level JSON wrapper type used for named-key responses,
// e.g. {"value": [...], "links": [...]}. Shaped single resources are written
// directly instead, so their field order survives.
type envelope map[string]any

// readUUIDParam extracts and parses a UUID URL parameter added by httprouter.
// Returns an error if the value is missing or not a valid UUID.
func (app *applicationDependencies) readUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	params := httprouter.ParamsFromContext(r.Context())
	id, err := uuid.Parse(params.ByName(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s parameter", name)
	}
	return id, nil
}

// readString reads a string query parameter from qs, returning defaultValue
// if the key is absent or empty.
func (app *applicationDependencies) readString(qs url.Values, key, defaultValue string) string {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	return s
}

// readInt reads an integer query parameter from qs, returning defaultValue if
// the key is absent or cannot be parsed as an integer.
func (app *applicationDependencies) readInt(qs url.Values, key string, defaultValue int) int {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return i
}

// readQueryParameters extracts the generic collection parameters from the
// request, applying defaults and clamping the page window. defaultOrderBy is
// the resource's natural sort field.
func (app *applicationDependencies) readQueryParameters(r *http.Request, defaultOrderBy string) query.Parameters {
	qs := r.URL.Query()

	p := query.DefaultParameters(defaultOrderBy)
	p.PageNumber = app.readInt(qs, "pageNumber", p.PageNumber)
	p.PageSize = app.readInt(qs, "pageSize", p.PageSize)
	p.Genre = app.readString(qs, "genre", "")
	p.SearchQuery = app.readString(qs, "searchQuery", "")
	p.OrderBy = app.readString(qs, "orderBy", p.OrderBy)
	p.Fields = app.readString(qs, "fields", "")
	p.Clamp()

	return p
}

// paginationHeader serialises the page metadata for the X-Pagination
// response header.
func paginationHeader(meta query.Metadata) (http.Header, error) {
	js, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	headers := http.Header{}
	headers.Set("X-Pagination", string(js))
	return headers, nil
}

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type to "application/json", writes the status code, and
// streams the body to the client.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n') // Trailing newline makes curl output nicer.

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// readJSON decodes a single JSON value from the request body into dst.
// It enforces a 1 MB size limit, rejects unknown fields, and ensures the
// body contains exactly one JSON value (no trailing data).
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	// Cap the request body to 1 MB to prevent large-payload attacks.
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields() // Reject fields not present in dst.

	err := dec.Decode(dst)
	if err != nil {
		return err
	}

	// Ensure there is no second JSON value in the body.
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}
