package data

import (
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/rsen253/library-api/internal/validator"
)

func TestAgeAt(t *testing.T) {
	birth := time.Date(1947, time.September, 21, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"day before birthday", time.Date(2004, time.September, 20, 0, 0, 0, 0, time.UTC), 56},
		{"on the birthday", time.Date(2004, time.September, 21, 0, 0, 0, 0, time.UTC), 57},
		{"after the birthday", time.Date(2004, time.December, 1, 0, 0, 0, 0, time.UTC), 57},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ageAt(birth, tc.now); got != tc.want {
				t.Errorf("ageAt = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestNewAuthorView(t *testing.T) {
	author := &Author{
		ID:          uuid.MustParse("76053df4-6687-4353-8937-b45556748abe"),
		FirstName:   "Stephen",
		LastName:    "King",
		DateOfBirth: time.Date(1947, time.September, 21, 0, 0, 0, 0, time.UTC),
		Genre:       "Horror",
	}

	view := NewAuthorView(author)
	if view.Name != "Stephen King" {
		t.Errorf("Name = %q, want %q", view.Name, "Stephen King")
	}
	if view.Genre != "Horror" {
		t.Errorf("Genre = %q, want %q", view.Genre, "Horror")
	}
	if view.ID != author.ID {
		t.Errorf("ID = %v, want %v", view.ID, author.ID)
	}
	if view.Age < 1 {
		t.Errorf("Age = %d, expected a positive age", view.Age)
	}
}

func TestAuthorFilters(t *testing.T) {
	if got := AuthorFilters("", ""); got != nil {
		t.Errorf("expected no filters, got %v", got)
	}

	filters := AuthorFilters("Horror", "king")
	if len(filters) != 2 {
		t.Fatalf("expected 2 filters, got %d", len(filters))
	}
	if filters[0].Columns[0] != "genre" || filters[0].Value != "Horror" {
		t.Errorf("unexpected genre filter: %+v", filters[0])
	}
	if len(filters[1].Columns) != 3 {
		t.Errorf("search filter should cover 3 columns, got %+v", filters[1])
	}
}

func TestAuthorFieldsMatchesViewDeclaration(t *testing.T) {
	view := NewAuthorView(&Author{FirstName: "Stephen", LastName: "King"})

	shaped, err := AuthorFields.Shape(view, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"id", "name", "age", "genre"}
	keys := shaped.Keys()
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestInsertAllCommitsWholeBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error opening stub database: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO authors").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO authors").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	authors := []*Author{
		{FirstName: "Stephen", LastName: "King", DateOfBirth: time.Date(1947, time.September, 21, 0, 0, 0, 0, time.UTC), Genre: "Horror"},
		{FirstName: "Shirley", LastName: "Jackson", DateOfBirth: time.Date(1916, time.December, 14, 0, 0, 0, 0, time.UTC), Genre: "Horror"},
	}

	model := AuthorModel{DB: db}
	if err := model.InsertAll(authors); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, author := range authors {
		if author.ID == uuid.Nil {
			t.Errorf("author %d was not assigned an id", i)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestInsertAllRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error opening stub database: %v", err)
	}
	defer db.Close()

	// The second insert fails; the transaction must roll back, never commit.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO authors").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO authors").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	authors := []*Author{
		{FirstName: "Stephen", LastName: "King", DateOfBirth: time.Date(1947, time.September, 21, 0, 0, 0, 0, time.UTC), Genre: "Horror"},
		{FirstName: "Shirley", LastName: "Jackson", DateOfBirth: time.Date(1916, time.December, 14, 0, 0, 0, 0, time.UTC), Genre: "Horror"},
	}

	model := AuthorModel{DB: db}
	if err := model.InsertAll(authors); err == nil {
		t.Fatal("expected an error from the failing insert")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestValidateAuthorInput(t *testing.T) {
	valid := CreateAuthorInput{
		FirstName:   "Stephen",
		LastName:    "King",
		DateOfBirth: time.Date(1947, time.September, 21, 0, 0, 0, 0, time.UTC),
		Genre:       "Horror",
	}

	v := validator.New()
	ValidateAuthorInput(v, &valid)
	if !v.Valid() {
		t.Fatalf("expected valid input, got errors %v", v.Errors)
	}

	invalid := CreateAuthorInput{DateOfBirth: time.Now().Add(24 * time.Hour)}
	v = validator.New()
	ValidateAuthorInput(v, &invalid)
	for _, key := range []string{"firstName", "lastName", "genre", "dateOfBirth"} {
		if _, ok := v.Errors[key]; !ok {
			t.Errorf("expected a validation error for %s", key)
		}
	}
}
