package query

import (
	"reflect"
	"testing"
)

type testView struct {
	ID    string
	Name  string
	Age   int
	Genre string
}

func newTestViewTable() View[testView] {
	return NewView(
		Field[testView]{Name: "id", Value: func(v testView) any { return v.ID }},
		Field[testView]{Name: "name", Value: func(v testView) any { return v.Name }},
		Field[testView]{Name: "age", Value: func(v testView) any { return v.Age }},
		Field[testView]{Name: "genre", Value: func(v testView) any { return v.Genre }},
	)
}

func TestNewViewPanicsOnDuplicateField(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for duplicate field names")
		}
	}()
	NewView(
		Field[testView]{Name: "name", Value: func(v testView) any { return v.Name }},
		Field[testView]{Name: "Name", Value: func(v testView) any { return v.Name }},
	)
}

func TestHasFields(t *testing.T) {
	view := newTestViewTable()

	tests := []struct {
		name   string
		fields string
		want   bool
	}{
		{"empty list", "", true},
		{"whitespace only", "  ", true},
		{"single field", "name", true},
		{"mixed case", "NaMe,GENRE", true},
		{"all fields with spaces", " id , name , age , genre ", true},
		{"id disambiguation suffix", "genreId", true},
		{"unknown field", "height", false},
		{"one unknown among known", "name,height", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := view.HasFields(tc.fields); got != tc.want {
				t.Errorf("HasFields(%q) = %v, want %v", tc.fields, got, tc.want)
			}
		})
	}
}

func TestShapeAllFieldsInDeclarationOrder(t *testing.T) {
	view := newTestViewTable()
	src := testView{ID: "a1", Name: "Stephen King", Age: 57, Genre: "Horror"}

	shaped, err := view.Shape(src, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"id", "name", "age", "genre"}
	if !reflect.DeepEqual(shaped.Keys(), want) {
		t.Errorf("keys = %v, want %v", shaped.Keys(), want)
	}
	if got, _ := shaped.Get("name"); got != "Stephen King" {
		t.Errorf("name = %v, want Stephen King", got)
	}
}

func TestShapePreservesRequestedOrder(t *testing.T) {
	view := newTestViewTable()
	src := testView{ID: "a1", Name: "Stephen King", Age: 57, Genre: "Horror"}

	// Requested order wins over declaration order, and casing is normalised
	// to the declared names.
	shaped, err := view.Shape(src, "Genre, ID")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"genre", "id"}
	if !reflect.DeepEqual(shaped.Keys(), want) {
		t.Errorf("keys = %v, want %v", shaped.Keys(), want)
	}
}

func TestShapeRejectsUnknownField(t *testing.T) {
	view := newTestViewTable()

	if _, err := view.Shape(testView{}, "name,height"); err == nil {
		t.Fatal("expected an error for an unknown field")
	}
}

func TestShapeDoesNotShareState(t *testing.T) {
	view := newTestViewTable()
	src := testView{ID: "a1"}

	first, err := view.Shape(src, "id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first.Set("links", []Link{NewLink("/v1/authors/a1", "self", "GET")})

	second, err := view.Shape(src, "id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := second.Get("links"); ok {
		t.Error("a fresh shape must not carry entries from a previous one")
	}
}

func TestShapeAll(t *testing.T) {
	view := newTestViewTable()
	items := []testView{
		{ID: "a1", Name: "Stephen King"},
		{ID: "a2", Name: "George Martin"},
	}

	shaped, err := ShapeAll(view, items, "name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shaped) != 2 {
		t.Fatalf("expected 2 shaped items, got %d", len(shaped))
	}
	if got, _ := shaped[1].Get("name"); got != "George Martin" {
		t.Errorf("second item name = %v, want George Martin", got)
	}
}
