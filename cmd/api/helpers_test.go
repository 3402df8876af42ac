// cmd/api/helpers_test.go
package main

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/rsen253/library-api/internal/config"
	"github.com/rsen253/library-api/internal/query"
)

// newTestApplication builds an applicationDependencies with a discarded
// logger, a fully-populated mapping registry and no database. Handlers that
// reject a request before touching the store can run against it directly.
func newTestApplication(t *testing.T) *applicationDependencies {
	t.Helper()

	registry, err := newMappingRegistry()
	if err != nil {
		t.Fatalf("unexpected registry error: %v", err)
	}

	settings := config.Default()
	settings.Limiter.Enabled = false

	return &applicationDependencies{
		config:   settings,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		registry: registry,
	}
}

func TestReadQueryParameters(t *testing.T) {
	app := newTestApplication(t)

	tests := []struct {
		name string
		url  string
		want query.Parameters
	}{
		{
			name: "defaults",
			url:  "/v1/authors",
			want: query.Parameters{PageNumber: 1, PageSize: 10, OrderBy: "name"},
		},
		{
			name: "oversized page size is clamped",
			url:  "/v1/authors?pageSize=50",
			want: query.Parameters{PageNumber: 1, PageSize: 20, OrderBy: "name"},
		},
		{
			name: "zero page size is clamped up",
			url:  "/v1/authors?pageSize=0&pageNumber=0",
			want: query.Parameters{PageNumber: 1, PageSize: 1, OrderBy: "name"},
		},
		{
			name: "unparsable integers fall back to defaults",
			url:  "/v1/authors?pageSize=abc&pageNumber=xyz",
			want: query.Parameters{PageNumber: 1, PageSize: 10, OrderBy: "name"},
		},
		{
			name: "all parameters",
			url:  "/v1/authors?pageNumber=2&pageSize=5&genre=Horror&searchQuery=king&orderBy=age+desc&fields=id,name",
			want: query.Parameters{
				PageNumber: 2, PageSize: 5,
				Genre: "Horror", SearchQuery: "king",
				OrderBy: "age desc", Fields: "id,name",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tc.url, nil)
			got := app.readQueryParameters(r, "name")
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}
