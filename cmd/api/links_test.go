// cmd/api/links_test.go
package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/rsen253/library-api/internal/query"
)

func TestCollectionLinksOmitsUnavailablePages(t *testing.T) {
	app := newTestApplication(t)
	params := query.DefaultParameters("name")

	links := app.collectionLinks("/v1/authors", params, false, false)

	if len(links) != 1 {
		t.Fatalf("expected only the self link, got %d links", len(links))
	}
	if links[0].Rel != "self" {
		t.Errorf("first link rel = %q, want self", links[0].Rel)
	}
}

func TestCollectionLinksCarryEveryParameter(t *testing.T) {
	app := newTestApplication(t)
	params := query.Parameters{
		PageNumber:  2,
		PageSize:    10,
		Genre:       "Horror",
		SearchQuery: "king",
		OrderBy:     "name desc",
		Fields:      "id,name",
	}

	links := app.collectionLinks("/v1/authors", params, true, true)

	if len(links) != 3 {
		t.Fatalf("expected self, previousPage and nextPage, got %d links", len(links))
	}

	rels := []string{links[0].Rel, links[1].Rel, links[2].Rel}
	if !reflect.DeepEqual(rels, []string{"self", "previousPage", "nextPage"}) {
		t.Errorf("unexpected rel order: %v", rels)
	}

	for _, link := range links {
		for _, param := range []string{"genre=Horror", "searchQuery=king", "fields=id%2Cname"} {
			if !strings.Contains(link.Href, param) {
				t.Errorf("%s link dropped %s: %s", link.Rel, param, link.Href)
			}
		}
	}
	if !strings.Contains(links[1].Href, "pageNumber=1") {
		t.Errorf("previousPage should point at page 1: %s", links[1].Href)
	}
	if !strings.Contains(links[2].Href, "pageNumber=3") {
		t.Errorf("nextPage should point at page 3: %s", links[2].Href)
	}
}

func TestCollectionLinksAreDeterministic(t *testing.T) {
	app := newTestApplication(t)
	params := query.Parameters{PageNumber: 2, PageSize: 10, Genre: "Horror", OrderBy: "name"}

	first := app.collectionLinks("/v1/authors", params, true, true)
	second := app.collectionLinks("/v1/authors", params, true, true)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical parameters must produce identical link sets")
	}
}

func TestAuthorLinks(t *testing.T) {
	app := newTestApplication(t)
	id := uuid.MustParse("76053df4-6687-4353-8937-b45556748abe")

	links := app.authorLinks(id, "")
	if links[0].Rel != "self" || links[0].Method != "GET" {
		t.Errorf("first link must be self GET, got %+v", links[0])
	}
	for _, link := range links {
		if !strings.Contains(link.Href, id.String()) {
			t.Errorf("%s link must reference the author id: %s", link.Rel, link.Href)
		}
	}

	// A shaped representation keeps its field list on the self link so
	// repeated navigation preserves the shape.
	shapedLinks := app.authorLinks(id, "id,name")
	if !strings.Contains(shapedLinks[0].Href, "fields=id%2Cname") {
		t.Errorf("self link should carry the field list: %s", shapedLinks[0].Href)
	}
	if strings.Contains(shapedLinks[1].Href, "fields=") {
		t.Errorf("action links should not carry the field list: %s", shapedLinks[1].Href)
	}
}

func TestBookLinks(t *testing.T) {
	app := newTestApplication(t)
	authorID := uuid.MustParse("76053df4-6687-4353-8937-b45556748abe")
	bookID := uuid.MustParse("c7ba6add-09c4-45f8-8dd0-eaca221e5d93")

	links := app.bookLinks(authorID, bookID, "")
	if len(links) != 3 {
		t.Fatalf("expected 3 book links, got %d", len(links))
	}
	want := map[string]string{
		"self":        "GET",
		"update_book": "PUT",
		"delete_book": "DELETE",
	}
	for _, link := range links {
		method, ok := want[link.Rel]
		if !ok {
			t.Errorf("unexpected rel %q", link.Rel)
			continue
		}
		if link.Method != method {
			t.Errorf("%s method = %q, want %q", link.Rel, link.Method, method)
		}
	}
}
